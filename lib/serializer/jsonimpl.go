package serializer

import (
	"encoding/json"
	"github.com/ValentinKolb/dFarm/lib/doc"
)

// NewJSONSerializer creates a new serializer using json encoding
func NewJSONSerializer() IDocSerializer {
	return &jsonSerializerImpl{}
}

// jsonSerializerImpl implements the IDocSerializer interface using json encoding
type jsonSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IDocSerializer)
// --------------------------------------------------------------------------

func (j jsonSerializerImpl) Serialize(d *doc.Document) ([]byte, error) {
	if d.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(d)
}

func (j jsonSerializerImpl) Deserialize(b []byte) (*doc.Document, error) {
	d := doc.New()
	if len(b) == 0 {
		return d, nil
	}
	if err := json.Unmarshal(b, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (j jsonSerializerImpl) Name() string {
	return "json"
}
