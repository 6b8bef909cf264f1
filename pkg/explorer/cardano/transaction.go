package cardano

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/tdex-network/byron-wallet/pkg/transaction"
)

const submitTxPath = "/api/v2/txs/signed"

// SubmitTransaction decodes txHex to make sure it is a well formed signed
// transaction, then posts its base64 encoding to the explorer. It fails if
// the explorer reports a hash other than the locally computed id.
func (s *service) SubmitTransaction(ctx context.Context, txHex string) (string, error) {
	tx, err := transaction.DecodeSignedTransactionHex(txHex)
	if err != nil {
		return "", err
	}
	txid, err := tx.ID()
	if err != nil {
		return "", err
	}
	buf, err := tx.Serialize()
	if err != nil {
		return "", err
	}

	right, err := s.post(ctx, submitTxPath, submitRequest{
		SignedTx: base64.StdEncoding.EncodeToString(buf),
	})
	if err != nil {
		return "", err
	}

	var result submitResult
	if err := json.Unmarshal(right, &result); err == nil &&
		len(result.TxHash) > 0 && result.TxHash != txid {
		return "", fmt.Errorf(
			"explorer returned tx hash %s, expected %s", result.TxHash, txid,
		)
	}
	return txid, nil
}
