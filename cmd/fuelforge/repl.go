package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/conversation"
	"github.com/hammamikhairi/fuelforge/internal/display"
	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/engine"
	"github.com/hammamikhairi/fuelforge/internal/logger"
	"github.com/hammamikhairi/fuelforge/internal/predict"
	"github.com/hammamikhairi/fuelforge/internal/recipe"
	"github.com/hammamikhairi/fuelforge/internal/report"
)

func runREPL(cmd *cobra.Command, g *globalFlags) error {
	d, err := g.load()
	if err != nil {
		return err
	}
	defer d.Close()

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var eng *engine.Engine
	ui := display.NewUI(func() display.Status {
		st := eng.State()
		return display.Status{
			Fuel:       st.FuelType,
			Components: len(st.Recipe),
			Total:      st.Total(),
			Ready:      st.CanPredict() == nil,
			Busy:       st.Busy,
			Pinned:     st.Pinned.Len(),
		}
	})
	notifier := conversation.NewCLINotifier(d.log, ui.Printf)
	eng = engine.New(d.client, d.cfg.FuelType(), d.log.With("engine"),
		engine.WithStore(d.store),
		engine.WithNotifier(notifier),
	)

	app := &cliApp{
		engine:   eng,
		parser:   conversation.NewKeywordParser(d.log.With("parser")),
		notifier: notifier,
		exporter: d.exporter,
		log:      d.log,
		ui:       ui,
	}

	fmt.Println(display.RenderBanner())
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		app.run(ctx)
		ui.Quit()
	}()

	// Bubble Tea owns the terminal until quit.
	if err := ui.Run(); err != nil {
		d.log.Error("display: %v", err)
	}
	cancel()
	return nil
}

type cliApp struct {
	engine   *engine.Engine
	parser   domain.IntentParser
	notifier domain.Notifier
	exporter *report.Exporter
	log      *logger.Logger
	ui       *display.UI
}

func (a *cliApp) run(ctx context.Context) {
	a.loadCatalog(ctx)
	a.showRecipe()

	inputCh := a.ui.InputChan()
	for {
		var input string
		var ok bool
		select {
		case <-ctx.Done():
			return
		case input, ok = <-inputCh:
			if !ok {
				return
			}
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		intent, err := a.parser.Parse(ctx, input)
		if err != nil {
			var ue *conversation.UsageError
			if errors.As(err, &ue) {
				a.ui.PrintHint(ue.Error())
				continue
			}
			a.log.Error("parsing input: %v", err)
			continue
		}

		a.log.Debug("intent: %s (slot=%d value=%g payload=%q)", intent.Type, intent.Slot, intent.Value, intent.Payload)
		if intent.Type == domain.IntentQuit {
			a.ui.PrintChat("Bye.")
			return
		}
		a.handleIntent(ctx, intent)
	}
}

func (a *cliApp) handleIntent(ctx context.Context, intent *domain.Intent) {
	switch intent.Type {
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentShow:
		a.showRecipe()
	case domain.IntentSwitchFuel:
		a.switchFuel(intent.Payload)
	case domain.IntentListComponents:
		a.showCatalog(ctx)
	case domain.IntentAddComponent:
		a.edit(a.engine.AddComponent(intent.Payload))
	case domain.IntentRemoveComponent:
		a.edit(a.engine.RemoveSlot(intent.Slot))
	case domain.IntentRenameComponent:
		a.edit(a.engine.RenameSlot(intent.Slot, intent.Payload))
	case domain.IntentSetPercentage:
		a.edit(a.engine.SetSlotPercentage(intent.Slot, intent.Value))
	case domain.IntentNormalize:
		a.normalize()
	case domain.IntentPredict:
		a.predict(ctx)
	case domain.IntentDetails:
		a.showDetails()
	case domain.IntentPin:
		a.pin()
	case domain.IntentUnpin:
		a.unpin(intent.Slot)
	case domain.IntentListPinned:
		a.ui.PrintBlock(display.PinnedView(a.engine.State().Pinned.Blends()))
	case domain.IntentCompare:
		a.ui.PrintBlock(display.TableView(a.engine.State().Comparison()))
	case domain.IntentClearPinned:
		a.engine.ClearPinned()
		a.ui.PrintChat("Pinned blends cleared.")
	case domain.IntentExport:
		a.export(intent.Payload)
	case domain.IntentHistory:
		a.showHistory(ctx)
	case domain.IntentSave:
		a.save(intent.Payload)
	case domain.IntentLoad:
		a.load(intent.Payload)
	case domain.IntentUnknown:
		a.ui.PrintHint(fmt.Sprintf("Unknown command %q. Type 'help' for commands.", intent.Payload))
	}
}

func (a *cliApp) loadCatalog(ctx context.Context) bool {
	if _, err := a.engine.LoadCatalog(ctx); err != nil {
		_ = a.notifier.NotifyUrgent(ctx, "Could not load components: "+predict.UserMessage(err)+". Type 'components' to retry.")
		return false
	}
	return true
}

func (a *cliApp) showRecipe() {
	st := a.engine.State()
	a.ui.PrintBlock(display.RecipeView(st.FuelType, st.Recipe, st.CanPredict()))
}

func (a *cliApp) edit(_ engine.State, err error) {
	if err != nil {
		a.fail(err)
		return
	}
	a.showRecipe()
}

func (a *cliApp) fail(err error) {
	a.ui.PrintUrgent(predict.UserMessage(err))
}

func (a *cliApp) switchFuel(name string) {
	fuel, err := domain.ParseFuelType(name)
	if err != nil {
		a.fail(err)
		return
	}
	if a.engine.State().FuelType == fuel {
		a.ui.PrintHint("Already on " + fuel.Profile().DisplayName + ".")
		return
	}
	a.engine.SwitchFuel(fuel)
	a.ui.PrintChat("Switched to " + fuel.Profile().DisplayName + ". Results and pins were cleared.")
	a.showRecipe()
}

func (a *cliApp) showCatalog(ctx context.Context) {
	if a.engine.State().Catalog.Empty() && !a.loadCatalog(ctx) {
		return
	}
	st := a.engine.State()
	a.ui.PrintBlock(display.CatalogView(st.Catalog, st.FuelType))
	if len(st.Recipe) > 0 {
		a.showRecipe()
	}
}

func (a *cliApp) normalize() {
	if _, changed := a.engine.Normalize(); !changed {
		a.ui.PrintHint("Nothing to normalize.")
		return
	}
	a.showRecipe()
}

// predict starts a prediction and returns right away; the result is
// printed when it arrives, unless it was superseded in the meantime.
func (a *cliApp) predict(ctx context.Context) {
	req, err := a.engine.BeginPredict()
	if err != nil {
		a.fail(err)
		return
	}
	a.ui.PrintHint(fmt.Sprintf("Predicting %s...", req.Recipe.Summary()))

	go func() {
		resp := a.engine.Resolve(ctx, req)
		st, applied := a.engine.Complete(ctx, resp)
		if !applied {
			return
		}
		if resp.Err != nil {
			a.fail(resp.Err)
			return
		}
		a.ui.PrintBlock(display.ResultView(st.Current))
		a.ui.PrintHint("Type 'pin' to keep it for comparison, 'export' for a PDF.")
	}()
}

func (a *cliApp) showDetails() {
	st := a.engine.State()
	if st.Current == nil {
		a.fail(domain.ErrNoResult)
		return
	}
	a.ui.PrintBlock(display.ComponentTableView(compare.BuildComponentTable(st.Current)))
}

func (a *cliApp) pin() {
	st, added, err := a.engine.Pin()
	if err != nil {
		a.fail(err)
		return
	}
	if !added {
		a.ui.PrintHint("Already pinned.")
		return
	}
	a.ui.PrintChat(fmt.Sprintf("Pinned as Blend %d.", st.Pinned.Len()))
}

func (a *cliApp) unpin(n int) {
	st, err := a.engine.Unpin(n)
	if err != nil {
		a.fail(err)
		return
	}
	a.ui.PrintBlock(display.PinnedView(st.Pinned.Blends()))
}

func (a *cliApp) export(kind string) {
	st := a.engine.State()

	var snap *report.Snapshot
	var name string
	var err error
	switch kind {
	case "compare":
		snap, err = report.RenderComparison(st.Comparison())
		name = report.ComparisonName
	default:
		snap, err = report.RenderBlendReport(st.Current, display.RadarDrawingSize())
		if st.Current != nil {
			name = report.ReportName(st.Current.ID)
		}
	}
	if errors.Is(err, report.ErrNoSnapshot) {
		a.ui.PrintHint("Nothing to export yet.")
		return
	}
	if err != nil {
		a.fail(err)
		return
	}

	path, err := a.exporter.Export(snap, name)
	if err != nil {
		a.fail(err)
		return
	}
	a.ui.PrintChat("Exported " + path)
}

func (a *cliApp) showHistory(ctx context.Context) {
	results, err := a.engine.History(ctx)
	if err != nil {
		a.fail(err)
		return
	}
	a.ui.PrintBlock(display.HistoryView(results))
}

func (a *cliApp) save(path string) {
	st := a.engine.State()
	if err := recipe.SaveFile(path, st.FuelType, st.Recipe); err != nil {
		a.fail(err)
		return
	}
	a.ui.PrintChat("Saved " + path)
}

func (a *cliApp) load(path string) {
	fuel, m, err := recipe.LoadFile(path)
	if err != nil {
		a.fail(err)
		return
	}
	a.engine.ReplaceRecipe(fuel, m.Components())
	a.ui.PrintChat("Loaded " + path)
	a.showRecipe()
}

func (a *cliApp) showHelp() {
	a.ui.PrintHeader("Commands:")
	for _, line := range conversation.HelpText() {
		a.ui.PrintText("  " + line)
	}
}
