package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by Resolve for a format name outside the
// supported set.
var ErrUnknownFormat = errors.New("unknown codec format")

// Codec converts values to and from one text wire format.
type Codec interface {
	// Name returns the format identifier used in configuration ("json", ...).
	Name() string
	// Marshal serializes a value to its wire text.
	Marshal(v any) ([]byte, error)
	// Unmarshal parses wire text into the given value.
	Unmarshal(data []byte, v any) error
}

// Resolve returns the codec for the given format name. The set of formats
// is closed; selection happens once at startup and an unknown name is a
// configuration error, never a runtime fallback.
func Resolve(format string) (Codec, error) {
	switch format {
	case "json":
		return jsonCodec{}, nil
	case "jsonc":
		return jsoncCodec{}, nil
	case "yaml":
		return yamlCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %v)", ErrUnknownFormat, format, Formats())
	}
}

// Formats lists the supported format names in stable order.
func Formats() []string {
	names := []string{"json", "jsonc", "yaml"}
	sort.Strings(names)
	return names
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// jsoncCodec accepts JSON with comments and trailing commas on the inbound
// side. It emits plain JSON; the relaxed syntax only matters when parsing.
type jsoncCodec struct{}

func (jsoncCodec) Name() string { return "jsonc" }

func (jsoncCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsoncCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(jsonc.ToJSON(data), v)
}

type yamlCodec struct{}

func (yamlCodec) Name() string { return "yaml" }

func (yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

func (yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}
