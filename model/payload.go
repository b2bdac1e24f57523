package model

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/safeops/payloadeye/utils"
)

// Payload is one Safe transaction-builder JSON batch. The same struct is used
// for decoding incoming batches and for emitting the bribe payload, so field
// names must stay aligned with the transaction-builder format.
type Payload struct {
	Version      string        `json:"version,omitempty"`
	ChainID      string        `json:"chainId"`
	CreatedAt    int64         `json:"createdAt,omitempty"`
	Meta         PayloadMeta   `json:"meta"`
	Transactions []Transaction `json:"transactions"`

	FileName string `json:"-"`
}

type PayloadMeta struct {
	Name                    string `json:"name,omitempty"`
	Description             string `json:"description,omitempty"`
	TxBuilderVersion        string `json:"txBuilderVersion,omitempty"`
	CreatedFromSafeAddress  string `json:"createdFromSafeAddress"`
	CreatedFromOwnerAddress string `json:"createdFromOwnerAddress,omitempty"`
	Checksum                string `json:"checksum,omitempty"`
	BIPNumber               string `json:"bip_number,omitempty"`
}

type Transaction struct {
	To                   string          `json:"to"`
	Value                string          `json:"value"`
	Data                 *string         `json:"data"`
	ContractMethod       *ContractMethod `json:"contractMethod"`
	ContractInputsValues map[string]any  `json:"contractInputsValues"`
	Meta                 *TxMeta         `json:"meta,omitempty"`
}

type TxMeta struct {
	BIPNumber string `json:"bip_number,omitempty"`
}

type ContractMethod struct {
	Inputs  []ContractInput `json:"inputs"`
	Name    string          `json:"name"`
	Payable bool            `json:"payable"`
}

type ContractInput struct {
	InternalType string `json:"internalType,omitempty"`
	Name         string `json:"name"`
	Type         string `json:"type"`
}

// MethodName returns the transaction-builder method name, "" for raw
// calldata transactions.
func (tx *Transaction) MethodName() string {
	if tx.ContractMethod == nil {
		return ""
	}
	return tx.ContractMethod.Name
}

// HasInputs reports whether the transaction carries both a decoded method and
// its input value map. Handlers skip transactions without them.
func (tx *Transaction) HasInputs() bool {
	return tx.ContractMethod != nil && len(tx.ContractInputsValues) > 0
}

// Input returns the raw input value for key rendered as a string, "" when the
// key is absent. Transaction-builder values are usually strings but numbers
// and bools appear in hand-edited payloads.
func (tx *Transaction) Input(key string) string {
	value, ok := tx.ContractInputsValues[key]
	if !ok {
		return ""
	}
	return stringifyInputValue(value)
}

// FirstInput returns the value of the first present key, "" when none match.
// Transfer payloads name their recipient to/dst/recipient/_to depending on
// the token implementation.
func (tx *Transaction) FirstInput(keys ...string) string {
	for _, key := range keys {
		if value := tx.Input(key); value != "" {
			return value
		}
	}
	return ""
}

// InputList parses the input value as a transaction-builder list string.
func (tx *Transaction) InputList(key string) []string {
	return utils.ParseListString(tx.Input(key))
}

func stringifyInputValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// ChainName maps the payload chainId to its network name, "" when unknown.
func (p *Payload) ChainName() string {
	id, err := strconv.ParseInt(p.ChainID, 10, 64)
	if err != nil {
		return ""
	}
	return utils.ChainNameByID(id)
}

// BIPNumber resolves the governance proposal tag for one transaction:
// per-transaction meta first, then the batch meta, then the file name.
func (p *Payload) BIPNumber(tx *Transaction) string {
	if tx != nil && tx.Meta != nil && tx.Meta.BIPNumber != "" {
		return tx.Meta.BIPNumber
	}
	if p.Meta.BIPNumber != "" {
		return p.Meta.BIPNumber
	}
	return utils.ExtractBIPNumber(p.FileName)
}

// DecodePayload parses a transaction-builder JSON document. Files without a
// transactions list are rejected so stray JSON artifacts in a payload
// directory are skipped instead of producing empty reports.
func DecodePayload(data []byte, fileName string) (*Payload, error) {
	payload := Payload{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("unmarshal payload %s is err: %v", fileName, err)
	}
	if payload.Transactions == nil {
		return nil, fmt.Errorf("file %s has no transactions list, not a payload", fileName)
	}
	if payload.ChainID == "" {
		return nil, fmt.Errorf("file %s has no chainId", fileName)
	}
	payload.FileName = fileName
	return &payload, nil
}

// LoadPayloadFile reads and decodes one payload from disk.
func LoadPayloadFile(path string) (*Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload file %s is err: %v", path, err)
	}
	return DecodePayload(data, filepath.ToSlash(path))
}

// FindPayloadFiles walks root and returns every .json file in lexical order.
func FindPayloadFiles(root string) ([]string, error) {
	files := []string{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk payload dir %s is err: %v", root, err)
	}
	sort.Strings(files)
	return files, nil
}
