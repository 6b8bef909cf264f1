package cardano

import (
	"encoding/json"
	"fmt"
)

// response is the Either value returned by every explorer endpoint.
type response struct {
	Left  *string         `json:"Left,omitempty"`
	Right json.RawMessage `json:"Right,omitempty"`
}

type addressSummary struct {
	Addresses []string    `json:"caAddresses"`
	TxNum     int         `json:"caTxNum"`
	TxList    []txSummary `json:"caTxList"`
}

type txSummary struct {
	TxHash  string    `json:"ctbId"`
	Inputs  []txEntry `json:"ctbInputs"`
	Outputs []txEntry `json:"ctbOutputs"`
}

// txEntry is an [address, coin] pair.
type txEntry struct {
	Address string
}

func (e *txEntry) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) <= 0 {
		return fmt.Errorf("empty tx entry")
	}
	return json.Unmarshal(parts[0], &e.Address)
}

type submitRequest struct {
	SignedTx string `json:"signedTx"`
}

type submitResult struct {
	TxHash string `json:"txHash"`
}
