package chain

import (
	"encoding/json"
	"fmt"
)

const opTransfer = "transfer"

type Transaction struct {
	TransactionID string      `json:"transaction_id"`
	BlockNum      uint64      `json:"block_num"`
	Expiration    string      `json:"expiration"`
	Operations    []Operation `json:"operations"`
}

// Operation 在节点返回的数据里是 [类型, 内容] 形式的二元数组
type Operation struct {
	Type    string
	Payload json.RawMessage
}

func (o *Operation) UnmarshalJSON(b []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("operation: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("operation: expected 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &o.Type); err != nil {
		return fmt.Errorf("operation type: %w", err)
	}
	o.Payload = pair[1]
	return nil
}

func (o Operation) MarshalJSON() ([]byte, error) {
	payload := o.Payload
	if len(payload) == 0 {
		payload = json.RawMessage("null")
	}
	return json.Marshal([]any{o.Type, payload})
}

type Transfer struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"` // 例如 "1.000 STEEM"
	Memo   string `json:"memo"`
}

// FindTransfer 返回第一笔发送方、接收方、金额字符串都完全一致的转账
func (t *Transaction) FindTransfer(from, to, amount string) (*Transfer, bool) {
	for _, op := range t.Operations {
		if op.Type != opTransfer {
			continue
		}

		var transfer Transfer
		if err := json.Unmarshal(op.Payload, &transfer); err != nil {
			continue
		}

		if transfer.From == from && transfer.To == to && transfer.Amount == amount {
			return &transfer, true
		}
	}

	return nil, false
}
