package domain

// Shared fixtures for the engine tests. The header set mirrors the named
// columns of a real export so resolution exercises the name-match path.

var testColumns = []string{
	"Filial Origem",
	"Serie/Numero CTRC",
	"Cidade de Entrega",
	"UF",
	"Unidade Receptora",
	"Codigo da Ultima Ocorrencia",
	"Data da Ultima Ocorrencia",
	"Data do Ultimo Manifesto",
	"Previsao de Entrega",
}

type row struct {
	ctrc      string
	city      string
	uf        string
	unit      string
	code      string
	occDate   string
	manifest  string
	predicted string
}

func (r row) record() Record {
	return Record{
		"Serie/Numero CTRC":           r.ctrc,
		"Cidade de Entrega":           r.city,
		"UF":                          r.uf,
		"Unidade Receptora":           r.unit,
		"Codigo da Ultima Ocorrencia": r.code,
		"Data da Ultima Ocorrencia":   r.occDate,
		"Data do Ultimo Manifesto":    r.manifest,
		"Previsao de Entrega":         r.predicted,
	}
}

func testDataset(rows ...row) *Dataset {
	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return NewDataset("export.csv", testColumns, records, DatasetMeta{TotalCount: len(records)})
}
