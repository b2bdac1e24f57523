package report

import (
	"strings"
	"testing"

	"github.com/magiconair/properties/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/model"
)

const daoSafe = "0x10A19e7eE7d7F8a52822f6817de8ea18204F2e4f"

func testBook() *addrbook.Map {
	return &addrbook.Map{Names: map[string]string{
		"mainnet:" + strings.ToLower(daoSafe): "multisigs/dao",
	}}
}

func testPayload(fileName string, txCount int) *model.Payload {
	payload := &model.Payload{
		ChainID:  "1",
		Meta:     model.PayloadMeta{CreatedFromSafeAddress: daoSafe, BIPNumber: "BIP-200"},
		FileName: fileName,
	}
	for i := 0; i < txCount; i++ {
		payload.Transactions = append(payload.Transactions, model.Transaction{To: daoSafe, Value: "0"})
	}
	return payload
}

func rowFor(handlerName string, txIndex int, fields ...string) model.ReportRow {
	row := model.ReportRow{Handler: handlerName, TxIndex: txIndex}
	for i := 0; i+1 < len(fields); i += 2 {
		row.Add(fields[i], fields[i+1])
	}
	return row
}

func TestBuildRendersHeaderAndSectionsInOrder(t *testing.T) {
	payload := testPayload("BIPs/BIP-200.json", 2)
	results := []handler.RunResult{
		{Handler: handler.HandlerTransfer, Reports: model.HandlerReport{
			payload.FileName: &model.FileReport{Payload: payload, Handler: handler.HandlerTransfer, Rows: []model.ReportRow{
				rowFor(handler.HandlerTransfer, 0, "function", "transfer", "amount", "25 (RAW: 25000000000000000000)"),
			}},
		}},
		{Handler: handler.HandlerUncovered, Reports: model.HandlerReport{
			payload.FileName: &model.FileReport{Payload: payload, Handler: handler.HandlerUncovered, Rows: []model.ReportRow{
				rowFor(handler.HandlerUncovered, 1, "fx_name", "sweep"),
			}},
		}},
	}

	rendered := Build(testBook(), []*model.Payload{payload}, results)
	require.Len(t, rendered, 1)
	text := rendered[0].Text

	require.Contains(t, text, "File: BIPs/BIP-200.json")
	require.Contains(t, text, "Chain: mainnet (1)")
	require.Contains(t, text, "Multisig: "+daoSafe+" (multisigs/dao)")
	require.Contains(t, text, "BIP: BIP-200")
	require.Contains(t, text, "Transactions: 2")

	require.Contains(t, text, "+++ Token Transfers +++")
	require.Contains(t, text, "+++ Transactions Without a Report +++")
	require.Contains(t, text, "--- tx_index: 0 ---")
	require.Contains(t, text, "function: transfer")
	require.Contains(t, text, "fx_name: sweep")

	// Sections keep handler execution order.
	require.Less(t,
		strings.Index(text, "+++ Token Transfers +++"),
		strings.Index(text, "+++ Transactions Without a Report +++"))
}

func TestBuildSkipsPayloadsWithoutReports(t *testing.T) {
	reported := testPayload("BIPs/BIP-200.json", 1)
	silent := testPayload("BIPs/empty.json", 0)
	results := []handler.RunResult{
		{Handler: handler.HandlerTransfer, Reports: model.HandlerReport{
			reported.FileName: &model.FileReport{Payload: reported, Handler: handler.HandlerTransfer, Rows: []model.ReportRow{
				rowFor(handler.HandlerTransfer, 0, "function", "transfer"),
			}},
		}},
	}

	rendered := Build(testBook(), []*model.Payload{reported, silent}, results)
	require.Len(t, rendered, 1)
	assert.Equal(t, rendered[0].FileName, reported.FileName)
}

func TestBuildLabelsUnknownMultisig(t *testing.T) {
	payload := testPayload("BIPs/BIP-200.json", 1)
	payload.Meta.CreatedFromSafeAddress = "0xba100000625a3754423978a60c9317c58a424e3D"
	results := []handler.RunResult{
		{Handler: handler.HandlerTransfer, Reports: model.HandlerReport{
			payload.FileName: &model.FileReport{Payload: payload, Handler: handler.HandlerTransfer, Rows: []model.ReportRow{
				rowFor(handler.HandlerTransfer, 0, "function", "transfer"),
			}},
		}},
	}

	rendered := Build(testBook(), []*model.Payload{payload}, results)
	require.Len(t, rendered, 1)
	require.Contains(t, rendered[0].Text, "Multisig: 0xba100000625a3754423978a60c9317c58a424e3D (Not Found)")
}
