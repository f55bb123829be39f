package model

// Symbol identifies one instrument in the fetch registry.
type Symbol struct {
	Code  string `yaml:"code" json:"code"`
	Label string `yaml:"label" json:"label"`
}
