package handler

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

var (
	transferRecipientKeys = []string{"to", "dst", "recipient", "_to"}
	transferAmountKeys    = []string{"amount", "value", "wad", "_value"}
)

// Transfer reports ERC-20 transfers out of the multisig. The token is the
// transaction target; recipient and amount keys vary across token
// implementations.
func Transfer(env *Env, payload *model.Payload, tx *model.Transaction, txIndex int) (*model.ReportRow, error) {
	if !tx.HasInputs() {
		return nil, nil
	}
	if tx.MethodName() != "transfer" {
		return nil, nil
	}
	chain := payload.ChainName()
	if chain == "" {
		logrus.Warnf("chain name not found for chain id %s, cannot report transfer", payload.ChainID)
		return nil, nil
	}

	token, err := env.Tokens.Token(chain, tx.To)
	if err != nil {
		return nil, err
	}

	recipient := tx.FirstInput(transferRecipientKeys...)
	if common.IsHexAddress(recipient) {
		recipient = utils.ChecksumAddress(recipient)
	} else {
		logrus.Errorf("cannot find recipient address on tx %d in %s", txIndex, payload.FileName)
		recipient = ""
	}
	recipientName := utils.SentinelNA
	if name := env.Book.NameOf(chain, recipient); name != "" {
		recipientName = name
	}

	rawAmount := tx.FirstInput(transferAmountKeys...)
	amount := utils.SentinelNA
	if rawAmount != "" {
		raw, err := decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("parse transfer amount %s on tx %d in %s is err: %v", rawAmount, txIndex, payload.FileName, err)
		}
		amount = token.GetValueWithDecimals(raw).String()
	}

	row := model.ReportRow{Handler: HandlerTransfer, TxIndex: txIndex}
	row.Add("function", "transfer").
		Add("chain", utils.DisplayChain(chain)).
		Add("token_symbol", fmt.Sprintf("%s:%s", token.GetSymbol(), utils.ChecksumAddress(tx.To))).
		Add("recipient", fmt.Sprintf("%s:%s", recipientName, recipient)).
		Add("amount", fmt.Sprintf("%s (RAW: %s)", amount, rawAmount)).
		Add("bip", payload.BIPNumber(tx))
	return &row, nil
}
