// Package bnccdoc composes BNCC lesson plans into print-ready documents and
// renders them to PDF, DOCX or HTML using headless Chrome.
//
// # Quick Start
//
// Compose a plan, render it, and write the result:
//
//	composer, err := bnccdoc.NewComposer(bnccdoc.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	engine := bnccdoc.NewEngine(bnccdoc.WithLogger(log))
//
//	doc, err := composer.ComposePlan(ctx, bnccdoc.PlanInput{
//	    Plan:     plan,
//	    Settings: settings, // nil uses DefaultSettings
//	    User:     owner,    // nil prints "Professor"
//	})
//	if err != nil {
//	    return err
//	}
//	pdf, err := engine.RenderPDF(ctx, doc, bnccdoc.ProfilePlan)
//
// # Documents
//
// A single-plan document has a cover, a title page, a table of contents,
// one page per section and a closing page with signatures, the validation
// code and a QR code pointing at the verification URL. Sections follow the
// export flags of the settings: theory (stage 0), lessons 1 to 5, then
// references. The yearly aggregate (ComposeYearly) groups every plan of a
// school year behind a skill header and has no title page.
//
// A section whose markdown cannot be converted is printed as raw text and
// a QR code that cannot be encoded is left out. Neither fails the document.
//
// # Rendering
//
// Each RenderPDF call launches its own browser and releases it before
// returning, whatever the outcome. Page load is bounded by WithLoadTimeout
// and the whole render by WithRenderTimeout; running out of either yields
// ErrRenderTimeout. RenderDOCX and RenderHTML need no browser.
//
// # Batch Export
//
// BatchExporter renders many plans into one ZIP archive against a single
// browser, one document at a time. The first failure aborts the batch:
//
//	exporter := bnccdoc.NewBatchExporter(composer, engine)
//	zip, err := exporter.Export(ctx, settings, records)
//
// ExportConcurrent renders up to a given number of documents at once on
// pages of the same browser; entry order still follows the input.
package bnccdoc
