package serializer

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"gopkg.in/yaml.v3"
)

// NewYAMLSerializer creates a new serializer using yaml encoding
func NewYAMLSerializer() IDocSerializer {
	return &yamlSerializerImpl{}
}

// yamlSerializerImpl implements the IDocSerializer interface using yaml encoding
type yamlSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IDocSerializer)
// --------------------------------------------------------------------------

func (y yamlSerializerImpl) Serialize(d *doc.Document) ([]byte, error) {
	if d.IsEmpty() {
		return nil, nil
	}
	return yaml.Marshal(d)
}

func (y yamlSerializerImpl) Deserialize(b []byte) (*doc.Document, error) {
	d := doc.New()
	if len(b) == 0 {
		return d, nil
	}
	if err := yaml.Unmarshal(b, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (y yamlSerializerImpl) Name() string {
	return "yaml"
}
