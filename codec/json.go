package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
	jsoniter "github.com/json-iterator/go"
)

// JSON encodes tables with encoding/json. Every other codec reads its output.
type JSON struct{}

func (JSON) Name() string { return "json" }
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// GoJSON encodes tables with github.com/goccy/go-json. It is the default.
type GoJSON struct{}

func (GoJSON) Name() string { return "go-json" }
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// JSONIter encodes tables with github.com/json-iterator/go in its
// encoding/json compatible configuration.
type JSONIter struct{}

var jsoniterAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (JSONIter) Name() string { return "jsoniter" }
func (JSONIter) Marshal(v any) ([]byte, error) { return jsoniterAPI.Marshal(v) }
func (JSONIter) Unmarshal(data []byte, v any) error { return jsoniterAPI.Unmarshal(data, v) }
