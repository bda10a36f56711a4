package adapter

import "encoding/json"

// JSON seams the gateway's codec so tests can inject malformed indexer and
// broker payloads without crafting raw byte fixtures
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	// Marshal encodes event payloads bound for the broker
	Marshal(v interface{}) ([]byte, error)
	// Unmarshal decodes indexing API response bodies
	Unmarshal(data []byte, v interface{}) error
}

// RealJSON backs the JSON seam with encoding/json
type RealJSON struct{}

// NewJSON creates the encoding/json backed codec
func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (j *RealJSON) Unmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
