package generator

import (
	"fmt"

	"github.com/farukalpay/xml-lib-sub000/internal/constants"
)

var recordKinds = []string{
	constants.RecordKindUser,
	constants.RecordKindProduct,
	constants.RecordKindTransaction,
	constants.RecordKindLog,
}

var firstNames = []string{"ada", "grace", "alan", "linus", "barbara", "dennis"}
var domains = []string{"example.com", "mail.test", "corp.internal"}
var productNames = []string{"widget", "gadget", "sprocket", "gizmo"}
var logLevels = []string{"info", "warn", "error", "debug"}

// generateRealistic produces a <dataset> of <record kind="..."> elements
// resembling real application data (users, products, transactions, log
// entries). When kind is empty, each record's kind is chosen at random from
// the four presets.
func (g *writer) generateRealistic(kind string) error {
	if err := g.startElement("dataset", []attr{{"generator", "synthetic-realistic"}}); err != nil {
		return err
	}

	seq := 0
	for !g.doneWriting() {
		seq++
		pick := kind
		if pick == "" {
			pick = recordKinds[g.rng.Intn(len(recordKinds))]
		}
		if err := g.emitRecord(pick, seq); err != nil {
			return err
		}
	}

	return g.closeAll()
}

func (g *writer) emitRecord(kind string, seq int) error {
	if err := g.startElement("record", []attr{{"id", fmt.Sprintf("%d", seq)}, {"kind", kind}}); err != nil {
		return err
	}

	switch kind {
	case constants.RecordKindUser:
		if err := g.field("name", firstNames[g.rng.Intn(len(firstNames))]); err != nil {
			return err
		}
		email := fmt.Sprintf("%s%d@%s", firstNames[g.rng.Intn(len(firstNames))], seq, domains[g.rng.Intn(len(domains))])
		if err := g.field("email", email); err != nil {
			return err
		}
		if err := g.field("active", fmt.Sprintf("%t", g.rng.Intn(2) == 0)); err != nil {
			return err
		}
	case constants.RecordKindProduct:
		if err := g.field("name", productNames[g.rng.Intn(len(productNames))]); err != nil {
			return err
		}
		if err := g.field("price", fmt.Sprintf("%.2f", g.rng.Float64()*500)); err != nil {
			return err
		}
		if err := g.field("sku", fmt.Sprintf("SKU-%06d", g.rng.Intn(1_000_000))); err != nil {
			return err
		}
	case constants.RecordKindTransaction:
		if err := g.field("amount", fmt.Sprintf("%.2f", g.rng.Float64()*10000-5000)); err != nil {
			return err
		}
		if err := g.field("currency", "USD"); err != nil {
			return err
		}
		if err := g.field("status", []string{"pending", "settled", "failed"}[g.rng.Intn(3)]); err != nil {
			return err
		}
	default: // RecordKindLog
		if err := g.field("level", logLevels[g.rng.Intn(len(logLevels))]); err != nil {
			return err
		}
		if err := g.field("message", randomSentence(g.rng, []string{"connected", "timeout", "retry", "closed", "listening"})); err != nil {
			return err
		}
	}

	return g.endElement()
}

func (g *writer) field(name, value string) error {
	if err := g.startElement(name, nil); err != nil {
		return err
	}
	if err := g.text(value); err != nil {
		return err
	}
	return g.endElement()
}
