package models

// Testimonial is a quote from a colleague or client.
type Testimonial struct {
	ID      string `json:"id" yaml:"id"`
	Name    string `json:"name" yaml:"name"`
	Title   string `json:"title" yaml:"title"`
	Company string `json:"company,omitempty" yaml:"company,omitempty"`
	Quote   string `json:"quote" yaml:"quote"`
	Avatar  string `json:"avatar,omitempty" yaml:"avatar,omitempty"`
	Rating  int    `json:"rating,omitempty" yaml:"rating,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}
