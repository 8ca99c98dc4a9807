package jsonmendmsgpack

import (
	"io"

	"github.com/vmihailenco/msgpack/v4"

	"github.com/mendable-io/jsonmend"
)

// MsgpackPatch is an alias for jsonmend.Patch which implements
// CustomEncoder/CustomDecoder. You should only use this if you need
// to embed a patch inside a larger msgpack structure. Otherwise it's
// preferred to use the Marshal and Unmarshal functions.
type MsgpackPatch jsonmend.Patch

var _ msgpack.CustomEncoder = (*MsgpackPatch)(nil)
var _ msgpack.CustomDecoder = (*MsgpackPatch)(nil)

// Marshal encodes a patch using Msgpack.
func Marshal(patch jsonmend.Patch) ([]byte, error) {
	mppatch := MsgpackPatch(patch)
	return msgpack.Marshal(&mppatch)
}

// Unmarshal decodes a patch using Msgpack.
func Unmarshal(data []byte) (jsonmend.Patch, error) {
	var mppatch MsgpackPatch
	err := msgpack.Unmarshal(data, &mppatch)
	if err != nil {
		return nil, err
	}
	return jsonmend.Patch(mppatch), nil
}

type writer struct {
	*msgpack.Encoder
}

func (w writer) WriteString(v string) error {
	return w.EncodeString(v)
}

func (w writer) WriteValue(v interface{}) error {
	return w.Encode(v)
}

func (patch *MsgpackPatch) EncodeMsgpack(enc *msgpack.Encoder) error {
	w := writer{enc}
	for _, op := range *patch {
		err := jsonmend.WriteTo(w, op)
		if err != nil {
			return err
		}
	}

	return nil
}

type reader struct {
	*msgpack.Decoder
}

func (r reader) ReadString() (string, error) {
	return r.DecodeString()
}

func (r reader) ReadValue() (interface{}, error) {
	var result interface{}
	err := r.Decode(&result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (patch *MsgpackPatch) DecodeMsgpack(dec *msgpack.Decoder) error {
	r := reader{dec}

	for {
		op, err := jsonmend.ReadFrom(r)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		*patch = append(*patch, op)
	}
}
