package serializer

import (
	"github.com/ValentinKolb/dFarm/lib/doc"
	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding, the same document always produces identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("serializer: CBOR encoder initialization failed: " + err.Error())
	}
}

// NewCBORSerializer creates a new serializer using cbor encoding
func NewCBORSerializer() IDocSerializer {
	return &cborSerializerImpl{}
}

// cborSerializerImpl implements the IDocSerializer interface using cbor encoding
type cborSerializerImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see serializer.IDocSerializer)
// --------------------------------------------------------------------------

func (c cborSerializerImpl) Serialize(d *doc.Document) ([]byte, error) {
	if d.IsEmpty() {
		return nil, nil
	}
	return encMode.Marshal(d)
}

func (c cborSerializerImpl) Deserialize(b []byte) (*doc.Document, error) {
	d := doc.New()
	if len(b) == 0 {
		return d, nil
	}
	if err := cbor.Unmarshal(b, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (c cborSerializerImpl) Name() string {
	return "cbor"
}
