package category

import "time"

type Category struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Icon      string    `json:"icon" yaml:"icon"`
	CreatedAt time.Time `json:"created_at" yaml:"-"`
}
