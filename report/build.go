package report

import (
	"fmt"

	"github.com/safeops/payloadeye/addrbook"
	"github.com/safeops/payloadeye/bribes"
	"github.com/safeops/payloadeye/handler"
	"github.com/safeops/payloadeye/model"
	"github.com/safeops/payloadeye/utils"
)

// sectionTitles maps handler names to their report section headings.
var sectionTitles = map[string]string{
	handler.HandlerGaugeAdd:      "Gauge Additions",
	handler.HandlerGaugeKill:     "Gauge Removals",
	handler.HandlerTransfer:      "Token Transfers",
	handler.HandlerPermissions:   "Permission Changes",
	handler.HandlerBribe:         "Hidden Hand Bribes",
	handler.HandlerRecipientList: "Recipient List Updates",
	handler.HandlerUncovered:     "Transactions Without a Report",
	bribes.BuilderHandlerName:    "Bribe Deposits",
}

// RenderedFile is one payload's finished report text.
type RenderedFile struct {
	FileName string
	Text     string
}

// Build stitches the handler outputs into one report per payload, keeping
// input file order and handler section order. Payloads no handler reported on
// produce no file; empty payloads therefore vanish from the output.
func Build(book addrbook.Resolver, payloads []*model.Payload, results []handler.RunResult) []RenderedFile {
	renderer := NewTextRenderer()
	rendered := []RenderedFile{}
	for _, payload := range payloads {
		sections := []SectionTemplateData{}
		for _, result := range results {
			fileReport := result.Reports[payload.FileName]
			if fileReport == nil || len(fileReport.Rows) == 0 {
				continue
			}
			rows := make([]RowTemplateData, 0, len(fileReport.Rows))
			for _, row := range fileReport.Rows {
				rows = append(rows, RowTemplateData{TxIndex: row.TxIndex, Fields: row.Fields})
			}
			title, ok := sectionTitles[result.Handler]
			if !ok {
				title = result.Handler
			}
			sections = append(sections, SectionTemplateData{Title: title, Rows: rows})
		}
		if len(sections) == 0 {
			continue
		}
		rendered = append(rendered, RenderedFile{
			FileName: payload.FileName,
			Text:     renderer.RenderFile(fileData(book, payload, sections)),
		})
	}
	return rendered
}

func fileData(book addrbook.Resolver, payload *model.Payload, sections []SectionTemplateData) FileTemplateData {
	chain := payload.ChainName()
	if chain == "" {
		chain = utils.SentinelNoChain
	}

	multisig := utils.SentinelNA
	if payload.Meta.CreatedFromSafeAddress != "" {
		address := utils.ChecksumAddress(payload.Meta.CreatedFromSafeAddress)
		label := book.NameOf(chain, address)
		if label == "" {
			label = utils.SentinelNotFound
		}
		multisig = fmt.Sprintf("%s (%s)", address, label)
	}

	return FileTemplateData{
		FileName: payload.FileName,
		Chain:    fmt.Sprintf("%s (%s)", chain, payload.ChainID),
		Multisig: multisig,
		BIP:      payload.BIPNumber(nil),
		TxCount:  len(payload.Transactions),
		Sections: sections,
	}
}
