package utils

import (
	json "github.com/go-json-experiment/json"
)

// Remarshal converts input into output through its JSON representation.
func Remarshal(input interface{}, output interface{}) error {
	b, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, output)
}
