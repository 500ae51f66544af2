package commands

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/spektr-org/projtrend"
	"github.com/spektr-org/projtrend/engine"
	"github.com/spektr-org/projtrend/internal/output"
)

// writeResult prints a run result in the requested format.
func writeResult(p *output.Printer, res *projtrend.Result, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(res.Summary, "", "  ")
		if err != nil {
			return err
		}
		p.Print("%s", out)
	case "yaml":
		out, err := yaml.Marshal(res.Summary)
		if err != nil {
			return err
		}
		fmt.Fprint(p.Out(), string(out))
	default:
		return writeTable(p, res)
	}
	return nil
}

func writeTable(p *output.Printer, res *projtrend.Result) error {
	p.Success("Kept %s of %s projects", engine.FormatInt(res.FilteredRows), engine.FormatInt(res.LoadedRows))

	p.Header("Projetos por ano")
	if err := output.FromTableData(p.Out(), engine.BuildYearTable(res.Counts)).Render(); err != nil {
		return err
	}

	p.Header("Tendência")
	p.Print("%s", engine.BuildReply(res.Trend, engine.BuildGrowth(res.Counts)))

	p.Header("Arquivos")
	p.Info("%s %s", p.Bold("csv_filtrado:  "), res.Summary.FilteredCSV)
	p.Info("%s %s", p.Bold("grafico_gerado:"), res.Summary.Chart)
	return nil
}
