package service

import (
	"context"
	"strings"
	"testing"

	"ctrc-insights/internal/features/ingest/adapters"
	reportadapters "ctrc-insights/internal/features/report/adapters"
	"ctrc-insights/internal/features/report/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportHeader = "Filial,Serie/Numero CTRC,Cidade de Entrega,UF,Unidade Receptora," +
	"Codigo da Ultima Ocorrencia,Data da Ultima Ocorrencia,Data do Ultimo Manifesto,Previsao de Entrega"

const exportContent = exportHeader + "\n" +
	"SP01,CTRC-1,Campinas,SP,CAMPINAS HUB,26,01/05/2024 10:00:00,30/04/2024,02/05/2024\n" +
	"SP01,CTRC-2,Campinas,SP,CAMPINAS HUB,1,02/05/2024 09:00:00,30/04/2024,02/05/2024\n" +
	"RJ01,CTRC-3,Niteroi,RJ,NITEROI,26,01/05/2024 11:00:00,29/04/2024,03/05/2024\n"

func newIngestService(batchSize int) (*IngestServiceImpl, *reportadapters.MemoryDatasetStore) {
	store := reportadapters.NewMemoryDatasetStore()
	svc := NewIngestService(store, batchSize,
		adapters.NewCSVDecoder(),
		adapters.NewSSWWEBDecoder(),
		adapters.NewXLSXDecoder(),
	)
	return svc, store
}

// TestIngestService_Ingest verifies decode, metadata and storage in one pass.
func TestIngestService_Ingest(t *testing.T) {
	svc, store := newIngestService(10000)

	d, err := svc.Ingest(context.Background(), "export.csv", strings.NewReader(exportContent))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "export.csv", d.Name)

	assert.Equal(t, 3, d.Meta.TotalCount)
	assert.Equal(t, map[string]int{"26": 2, "1": 1}, d.Meta.Frequency)
	assert.Equal(t, []string{"RJ", "SP"}, d.Meta.UFs)
	assert.Equal(t, []string{"CAMPINAS HUB"}, d.Meta.UnitsByUF["SP"])
	assert.Equal(t, []string{"NITEROI"}, d.Meta.UnitsByUF["RJ"])
	assert.Equal(t, 1, d.Meta.CityByCode["26"]["Campinas"])
	assert.Equal(t, 1, d.Meta.CityByCode["26"]["Niteroi"])

	stored, err := store.Get(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Same(t, d, stored)
}

// TestIngestService_SmallBatches verifies batching does not change the result.
func TestIngestService_SmallBatches(t *testing.T) {
	svc, _ := newIngestService(1)

	d, err := svc.Ingest(context.Background(), "export.csv", strings.NewReader(exportContent))
	require.NoError(t, err)
	assert.Equal(t, 3, d.Meta.TotalCount)
	assert.Len(t, d.Rows, 3)
}

// TestIngestService_UnsupportedFormat verifies unknown extensions are rejected.
func TestIngestService_UnsupportedFormat(t *testing.T) {
	svc, _ := newIngestService(10000)

	_, err := svc.Ingest(context.Background(), "export.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// TestIngestService_EmptyFile verifies header-only uploads are rejected.
func TestIngestService_EmptyFile(t *testing.T) {
	svc, _ := newIngestService(10000)

	_, err := svc.Ingest(context.Background(), "export.csv", strings.NewReader(exportHeader+"\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyFile)
}

// TestIngestService_BadStructure verifies a missing occurrence column fails
// the upload with the resolver's error.
func TestIngestService_BadStructure(t *testing.T) {
	svc, _ := newIngestService(10000)

	content := "A,B,C\n1,2,3\n"
	_, err := svc.Ingest(context.Background(), "export.csv", strings.NewReader(content))
	require.Error(t, err)

	var colErr *domain.ColumnResolutionError
	require.ErrorAs(t, err, &colErr)
	assert.Equal(t, domain.FieldOccurrenceCode, colErr.Field)
}

// TestIngestService_Cancellation verifies an abandoned upload stops between
// batches.
func TestIngestService_Cancellation(t *testing.T) {
	svc, _ := newIngestService(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Ingest(ctx, "export.csv", strings.NewReader(exportContent))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestIngestService_SSWWEB verifies the offset-compensated format resolves
// the same semantic columns.
func TestIngestService_SSWWEB(t *testing.T) {
	svc, _ := newIngestService(10000)

	content := "Relatorio de rastreamento\n" +
		strings.ReplaceAll(exportHeader, ",", ";") + "\n" +
		"SP01;CTRC-1;Campinas;SP;CAMPINAS HUB;26;01/05/2024 10:00:00;30/04/2024;02/05/2024\n"

	d, err := svc.Ingest(context.Background(), "export.sswweb", strings.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, 1, d.Meta.TotalCount)
	assert.Equal(t, map[string]int{"26": 1}, d.Meta.Frequency)
	assert.Equal(t, []string{"SP"}, d.Meta.UFs)
}
