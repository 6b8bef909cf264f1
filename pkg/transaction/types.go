package transaction

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/fxamacker/cbor/v2"
	"github.com/tdex-network/byron-wallet/pkg/bufferutil"
	"github.com/tdex-network/byron-wallet/pkg/cborutil"
)

const (
	// inputTypeUtxo tags an input spending a regular transaction output.
	inputTypeUtxo = 0
	// witnessTypePublicKey tags a (public key, signature) witness.
	witnessTypePublicKey = 0
)

// TxInput references the output at Index of transaction TxID.
type TxInput struct {
	TxID  string
	Index uint32
}

func (in TxInput) validate() error {
	if _, err := bufferutil.TxIDToBytes(in.TxID); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInputTxID, err)
	}
	return nil
}

// MarshalCBOR encodes the input as [0, #6.24(bytes(cbor([txid, index])))].
func (in TxInput) MarshalCBOR() ([]byte, error) {
	txid, err := bufferutil.TxIDToBytes(in.TxID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInputTxID, err)
	}
	payload, err := cborutil.EmbedCBOR([]interface{}{txid, in.Index})
	if err != nil {
		return nil, err
	}
	return cborutil.Marshal([]interface{}{uint64(inputTypeUtxo), payload})
}

func decodeTxInput(data []byte) (TxInput, error) {
	var parts []cbor.RawMessage
	if err := cborutil.Unmarshal(data, &parts); err != nil {
		return TxInput{}, err
	}
	if len(parts) != 2 {
		return TxInput{}, fmt.Errorf("input: expected 2 items, got %d", len(parts))
	}
	var inputType uint64
	if err := cborutil.Unmarshal(parts[0], &inputType); err != nil {
		return TxInput{}, err
	}
	if inputType != inputTypeUtxo {
		return TxInput{}, fmt.Errorf("input: unsupported type %d", inputType)
	}

	var payload []cbor.RawMessage
	if err := cborutil.UnembedCBOR(parts[1], &payload); err != nil {
		return TxInput{}, err
	}
	if len(payload) != 2 {
		return TxInput{}, fmt.Errorf("input: expected 2 payload items, got %d", len(payload))
	}
	var txid []byte
	var index uint32
	if err := cborutil.Unmarshal(payload[0], &txid); err != nil {
		return TxInput{}, err
	}
	if err := cborutil.Unmarshal(payload[1], &index); err != nil {
		return TxInput{}, err
	}

	in := TxInput{bufferutil.TxIDFromBytes(txid), index}
	return in, in.validate()
}

// TxOutput pays Amount, in the smallest currency unit, to Address.
type TxOutput struct {
	Address string
	Amount  uint64
}

func (out TxOutput) rawAddress() (cbor.RawMessage, error) {
	buf := base58.Decode(out.Address)
	if len(buf) <= 0 {
		return nil, ErrInvalidOutputAddress
	}
	if err := cborutil.Wellformed(buf); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidOutputAddress, err)
	}
	return cbor.RawMessage(buf), nil
}

func (out TxOutput) validate() error {
	_, err := out.rawAddress()
	return err
}

// MarshalCBOR encodes the output as [address, amount] where address is the
// raw cbor behind the base58 string.
func (out TxOutput) MarshalCBOR() ([]byte, error) {
	addr, err := out.rawAddress()
	if err != nil {
		return nil, err
	}
	return cborutil.Marshal([]interface{}{addr, out.Amount})
}

func decodeTxOutput(data []byte) (TxOutput, error) {
	var parts []cbor.RawMessage
	if err := cborutil.Unmarshal(data, &parts); err != nil {
		return TxOutput{}, err
	}
	if len(parts) != 2 {
		return TxOutput{}, fmt.Errorf("output: expected 2 items, got %d", len(parts))
	}
	var amount uint64
	if err := cborutil.Unmarshal(parts[1], &amount); err != nil {
		return TxOutput{}, err
	}
	return TxOutput{base58.Encode(parts[0]), amount}, nil
}

// Attribute is a single entry of a transaction attributes map.
type Attribute struct {
	Key   uint64
	Value []byte
}

// Attributes is an insertion ordered map. Keys are never sorted when
// encoded, so callers must build it deterministically.
type Attributes []Attribute

func (a Attributes) validate() error {
	seen := make(map[uint64]struct{}, len(a))
	for _, attr := range a {
		if _, ok := seen[attr.Key]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicatedAttributeKey, attr.Key)
		}
		seen[attr.Key] = struct{}{}
	}
	return nil
}

func (a Attributes) clone() Attributes {
	attrs := make(Attributes, 0, len(a))
	for _, attr := range a {
		attrs = append(attrs, Attribute{attr.Key, bufferutil.Clone(attr.Value)})
	}
	return attrs
}

// MarshalCBOR implements cbor.Marshaler.
func (a Attributes) MarshalCBOR() ([]byte, error) {
	m := make(cborutil.OrderedMap, 0, len(a))
	for _, attr := range a {
		value := attr.Value
		if value == nil {
			value = []byte{}
		}
		m = append(m, cborutil.MapEntry{Key: attr.Key, Value: value})
	}
	return cborutil.Marshal(m)
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (a *Attributes) UnmarshalCBOR(data []byte) error {
	var m cborutil.OrderedMap
	if err := cborutil.Unmarshal(data, &m); err != nil {
		return err
	}
	attrs := make(Attributes, 0, len(m))
	for _, entry := range m {
		var key uint64
		var value []byte
		if err := cborutil.Unmarshal(entry.Key.(cbor.RawMessage), &key); err != nil {
			return fmt.Errorf("attribute key: %w", err)
		}
		if err := cborutil.Unmarshal(entry.Value.(cbor.RawMessage), &value); err != nil {
			return fmt.Errorf("attribute value: %w", err)
		}
		attrs = append(attrs, Attribute{key, value})
	}
	*a = attrs
	return nil
}

// TxWitness authorizes an input with an extended public key (key and chain
// code) and an Ed25519 signature, both hex encoded.
type TxWitness struct {
	PublicKey string
	Signature string
}

// NewTxWitness returns the hex encoded witness for the given raw values.
func NewTxWitness(publicKey, signature []byte) TxWitness {
	return TxWitness{hex.EncodeToString(publicKey), hex.EncodeToString(signature)}
}

func (w TxWitness) validate() error {
	if _, err := bufferutil.PublicKeyToBytes(w.PublicKey); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidWitnessPublicKey, err)
	}
	if _, err := bufferutil.SignatureToBytes(w.Signature); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidWitnessSignature, err)
	}
	return nil
}

// MarshalCBOR encodes the witness as [0, #6.24(bytes(cbor([xpub, sig])))].
func (w TxWitness) MarshalCBOR() ([]byte, error) {
	if err := w.validate(); err != nil {
		return nil, err
	}
	pubkey, _ := hex.DecodeString(w.PublicKey)
	sig, _ := hex.DecodeString(w.Signature)

	payload, err := cborutil.EmbedCBOR([]interface{}{pubkey, sig})
	if err != nil {
		return nil, err
	}
	return cborutil.Marshal([]interface{}{uint64(witnessTypePublicKey), payload})
}

func decodeTxWitness(data []byte) (TxWitness, error) {
	var parts []cbor.RawMessage
	if err := cborutil.Unmarshal(data, &parts); err != nil {
		return TxWitness{}, err
	}
	if len(parts) != 2 {
		return TxWitness{}, fmt.Errorf("witness: expected 2 items, got %d", len(parts))
	}
	var witnessType uint64
	if err := cborutil.Unmarshal(parts[0], &witnessType); err != nil {
		return TxWitness{}, err
	}
	if witnessType != witnessTypePublicKey {
		return TxWitness{}, fmt.Errorf("witness: unsupported type %d", witnessType)
	}

	var payload [][]byte
	if err := cborutil.UnembedCBOR(parts[1], &payload); err != nil {
		return TxWitness{}, err
	}
	if len(payload) != 2 {
		return TxWitness{}, fmt.Errorf("witness: expected 2 payload items, got %d", len(payload))
	}

	w := NewTxWitness(payload[0], payload[1])
	return w, w.validate()
}
