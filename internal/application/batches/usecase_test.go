package batches_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdeflow/trazo-api/internal/application/batches"
	"github.com/verdeflow/trazo-api/internal/domain"
	batchdomain "github.com/verdeflow/trazo-api/internal/domain/batch"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
)

const (
	testCompany  = "empresa-1"
	testUser     = "user-1"
	testFacility = "finca-1"
	areaGerm     = "area-germinacion"
	areaVege     = "area-vegetacion"
	areaFlor     = "area-floracion"
	testCrop     = "cultivo-cafe"
	testCultivar = "cultivar-castillo"
	testOrder    = "orden-1"
)

type fixture struct {
	store *fakeStore
	uc    *batches.LifecycleUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := newFakeStore()

	s.facilities[testFacility] = &entity.Facility{ID: testFacility, CompanyID: testCompany, Name: "Finca El Vergel"}
	s.facilities["finca-ajena"] = &entity.Facility{ID: "finca-ajena", CompanyID: "empresa-2", Name: "Otra finca"}
	for _, id := range []string{areaGerm, areaVege, areaFlor} {
		s.areas[id] = &entity.Area{ID: id, CompanyID: testCompany, FacilityID: testFacility, Name: id, Capacity: 1000}
	}
	s.areas["area-ajena"] = &entity.Area{ID: "area-ajena", CompanyID: "empresa-2", FacilityID: "finca-ajena"}
	s.cropTypes[testCrop] = &entity.CropType{ID: testCrop, Name: "Café"}
	s.cropTypes["cultivo-cannabis"] = &entity.CropType{ID: "cultivo-cannabis", Name: "Cannabis"}
	s.cultivars[testCultivar] = &entity.Cultivar{ID: testCultivar, CompanyID: testCompany, CropTypeID: testCrop, Name: "Café Castillo"}
	s.cultivars["cultivar-kush"] = &entity.Cultivar{ID: "cultivar-kush", CompanyID: testCompany, CropTypeID: "cultivo-cannabis", Name: "OG Kush"}
	s.orders[testOrder] = &entity.ProductionOrder{ID: testOrder, CompanyID: testCompany, Code: "OP-001", ActualYield: decimal.Zero}

	uc := batches.NewLifecycleUseCase(
		&fakeTxRunner{s},
		&fakeBatchRepo{s},
		&fakeFacilityRepo{s},
		&fakeAreaRepo{s},
		&fakeCropTypeRepo{s},
		&fakeCultivarRepo{s},
		&fakeOrderRepo{s},
		&fakeActivityRepo{s},
	)
	return &fixture{store: s, uc: uc}
}

func (f *fixture) createBatch(t *testing.T, qty int, tracking bool) *entity.Batch {
	t.Helper()
	b, err := f.uc.Create(context.Background(), batches.CreateInput{
		CompanyID:                testCompany,
		UserID:                   testUser,
		FacilityID:               testFacility,
		AreaID:                   areaGerm,
		CropTypeID:               testCrop,
		CultivarID:               testCultivar,
		ProductionOrderID:        testOrder,
		PlannedQuantity:          qty,
		InitialQuantity:          qty,
		CurrentPhase:             "germination",
		EnableIndividualTracking: tracking,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) batch(id string) *entity.Batch { return f.store.batches[id] }

// assertConservation verifica la ley de conservación sobre un lote.
func assertConservation(t *testing.T, b *entity.Batch) {
	t.Helper()
	assert.LessOrEqual(t, b.CurrentQuantity+b.LostQuantity, b.InitialQuantity,
		"conservación violada en %s: current=%d lost=%d initial=%d",
		b.BatchCode, b.CurrentQuantity, b.LostQuantity, b.InitialQuantity)
}

// assertOccupancy verifica que la ocupación de cada área coincide con la suma
// de las cantidades actuales de los lotes asignados a ella.
func assertOccupancy(t *testing.T, f *fixture) {
	t.Helper()
	sums := map[string]int{}
	for _, b := range f.store.batches {
		if b.AreaID != "" {
			sums[b.AreaID] += b.CurrentQuantity
		}
	}
	for id, a := range f.store.areas {
		assert.Equal(t, sums[id], a.CurrentOccupancy, "ocupación inconsistente en %s", id)
	}
}

func lastActivity(f *fixture, batchID string) *entity.Activity {
	for i := len(f.store.activities) - 1; i >= 0; i-- {
		if f.store.activities[i].EntityID == batchID {
			return f.store.activities[i]
		}
	}
	return nil
}

// ── Create ──

func TestCreate_InsertaLoteConOcupacionYPlantas(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, true)

	wantCode := fmt.Sprintf("CAF-%s-001", time.Now().Format(batchdomain.CodeDayFormat))
	assert.Equal(t, wantCode, b.BatchCode)
	assert.Equal(t, entity.BatchStatusActive, b.Status)
	assert.Equal(t, 10, b.CurrentQuantity)
	assert.Equal(t, 10, f.store.areas[areaGerm].CurrentOccupancy)
	assert.Equal(t, 10, f.store.orders[testOrder].ActualPlants)

	plants, err := (&fakePlantRepo{f.store}).ListByBatch(b.ID)
	require.NoError(t, err)
	require.Len(t, plants, 10)
	assert.Equal(t, wantCode+"-P1", plants[0].PlantCode)
	assert.Equal(t, areaGerm, plants[0].AreaID)
	assert.Equal(t, "germination", plants[0].PlantStage)

	// La creación no escribe actividad.
	assert.Empty(t, f.store.activities)
	assertOccupancy(t, f)
}

func TestCreate_SecuenciaDiariaIncrementa(t *testing.T) {
	f := newFixture(t)
	b1 := f.createBatch(t, 5, false)
	b2 := f.createBatch(t, 5, false)

	day := time.Now().Format(batchdomain.CodeDayFormat)
	assert.Equal(t, "CAF-"+day+"-001", b1.BatchCode)
	assert.Equal(t, "CAF-"+day+"-002", b2.BatchCode)
}

func TestCreate_ValidaReferencias(t *testing.T) {
	f := newFixture(t)
	base := batches.CreateInput{
		CompanyID: testCompany, UserID: testUser,
		FacilityID: testFacility, AreaID: areaGerm,
		CropTypeID: testCrop, InitialQuantity: 5,
	}

	cases := []struct {
		name    string
		mutate  func(*batches.CreateInput)
		wantErr error
	}{
		{"instalación inexistente", func(in *batches.CreateInput) { in.FacilityID = "nope" }, domain.ErrNotFound},
		{"instalación de otra empresa", func(in *batches.CreateInput) { in.FacilityID = "finca-ajena" }, domain.ErrOwnershipMismatch},
		{"área inexistente", func(in *batches.CreateInput) { in.AreaID = "nope" }, domain.ErrNotFound},
		{"área de otra instalación", func(in *batches.CreateInput) { in.AreaID = "area-ajena" }, domain.ErrOwnershipMismatch},
		{"tipo de cultivo inexistente", func(in *batches.CreateInput) { in.CropTypeID = "nope" }, domain.ErrNotFound},
		{"cultivar de otro tipo de cultivo", func(in *batches.CreateInput) { in.CultivarID = "cultivar-kush" }, domain.ErrOwnershipMismatch},
		{"orden inexistente", func(in *batches.CreateInput) { in.ProductionOrderID = "nope" }, domain.ErrNotFound},
		{"cantidad inválida", func(in *batches.CreateInput) { in.InitialQuantity = 0 }, domain.ErrInvalidInput},
		{"sin identidad", func(in *batches.CreateInput) { in.UserID = "" }, domain.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			_, err := f.uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// Fail-fast: ninguna validación fallida dejó escrituras parciales.
	assert.Empty(t, f.store.batches)
	assert.Equal(t, 0, f.store.areas[areaGerm].CurrentOccupancy)
}

// ── Move ──

func TestMove_TrasladaLoteYPlantas(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, true)

	err := f.uc.Move(context.Background(), testCompany, testUser, b.ID, batches.MoveInput{
		ToAreaID: areaVege, Reason: "cambio de fase próximo",
	})
	require.NoError(t, err)

	got := f.batch(b.ID)
	assert.Equal(t, areaVege, got.AreaID)
	assert.Equal(t, 10, got.CurrentQuantity, "el traslado no cambia cantidades")
	assert.Equal(t, 0, f.store.areas[areaGerm].CurrentOccupancy)
	assert.Equal(t, 10, f.store.areas[areaVege].CurrentOccupancy)

	plants, _ := (&fakePlantRepo{f.store}).ListByBatch(b.ID)
	for _, p := range plants {
		assert.Equal(t, areaVege, p.AreaID)
	}

	require.Len(t, f.store.movements, 1)
	assert.Equal(t, areaGerm, f.store.movements[0].FromAreaID)
	assert.Equal(t, areaVege, f.store.movements[0].ToAreaID)

	act := lastActivity(f, b.ID)
	require.NotNil(t, act)
	assert.Equal(t, entity.ActivityMovement, act.ActivityType)
	assert.Equal(t, act.QuantityBefore, act.QuantityAfter)
	assertOccupancy(t, f)
}

func TestMove_Rechazos(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, false)

	// Misma área.
	err := f.uc.Move(context.Background(), testCompany, testUser, b.ID, batches.MoveInput{ToAreaID: areaGerm})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Área de otra instalación.
	err = f.uc.Move(context.Background(), testCompany, testUser, b.ID, batches.MoveInput{ToAreaID: "area-ajena"})
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)

	// Otra empresa.
	err = f.uc.Move(context.Background(), "empresa-2", testUser, b.ID, batches.MoveInput{ToAreaID: areaVege})
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)

	// Lote inexistente.
	err = f.uc.Move(context.Background(), testCompany, testUser, "nope", batches.MoveInput{ToAreaID: areaVege})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Equal(t, areaGerm, f.batch(b.ID).AreaID, "ningún rechazo movió el lote")
	assertOccupancy(t, f)
}

// ── RecordLoss ──

func TestRecordLoss_Parcial(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, true)

	err := f.uc.RecordLoss(context.Background(), testCompany, testUser, b.ID, batches.LossInput{
		Quantity: 3, Reason: "hongos",
	})
	require.NoError(t, err)

	got := f.batch(b.ID)
	assert.Equal(t, 7, got.CurrentQuantity)
	assert.Equal(t, 3, got.LostQuantity)
	assert.Equal(t, 30, got.MortalityRate)
	assert.Equal(t, entity.BatchStatusActive, got.Status)
	assert.Equal(t, 7, f.store.areas[areaGerm].CurrentOccupancy)
	assertConservation(t, got)
	assertOccupancy(t, f)

	n, _ := (&fakePlantRepo{f.store}).CountActiveByBatch(b.ID)
	assert.Equal(t, 7, n, "las plantas muertas acompañan a la pérdida")

	require.Len(t, f.store.losses, 1)
	act := lastActivity(f, b.ID)
	require.NotNil(t, act)
	assert.Equal(t, entity.ActivityLossRecord, act.ActivityType)
	assert.Equal(t, 10, act.QuantityBefore)
	assert.Equal(t, 7, act.QuantityAfter)
}

func TestRecordLoss_ACeroMarcaPerdido(t *testing.T) {
	// Escenario de la especificación de producto: pérdida total.
	f := newFixture(t)
	b := f.createBatch(t, 10, false)

	err := f.uc.RecordLoss(context.Background(), testCompany, testUser, b.ID, batches.LossInput{
		Quantity: 10, Reason: "helada",
	})
	require.NoError(t, err)

	got := f.batch(b.ID)
	assert.Equal(t, entity.BatchStatusLost, got.Status)
	assert.Equal(t, 0, got.CurrentQuantity)
	assert.Equal(t, 100, got.MortalityRate)
	assert.Equal(t, 0, f.store.areas[areaGerm].CurrentOccupancy)
	assertOccupancy(t, f)
}

func TestRecordLoss_ExcedenteRechazado(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, false)

	err := f.uc.RecordLoss(context.Background(), testCompany, testUser, b.ID, batches.LossInput{Quantity: 11})
	assert.ErrorIs(t, err, domain.ErrQuantityMismatch)

	got := f.batch(b.ID)
	assert.Equal(t, 10, got.CurrentQuantity)
	assert.Empty(t, f.store.losses)
}

// ── Split ──

func TestSplit_Exacto(t *testing.T) {
	// Escenario de la especificación de producto: 30 -> [10, 20].
	f := newFixture(t)
	b := f.createBatch(t, 30, true)

	res, err := f.uc.Split(context.Background(), testCompany, testUser, b.ID, batches.SplitInput{
		Groups: []batches.SplitGroup{
			{Quantity: 10, ToAreaID: areaVege},
			{Quantity: 20, ToAreaID: areaFlor},
		},
		Reason: "rescate por espacio",
	})
	require.NoError(t, err)
	require.Len(t, res.NewBatchIDs, 2)

	orig := f.batch(b.ID)
	assert.Equal(t, entity.BatchStatusSplit, orig.Status)
	assert.Equal(t, 0, orig.CurrentQuantity)

	c1 := f.batch(res.NewBatchIDs[0])
	c2 := f.batch(res.NewBatchIDs[1])
	assert.Equal(t, 10, c1.CurrentQuantity)
	assert.Equal(t, 20, c2.CurrentQuantity)
	for _, c := range []*entity.Batch{c1, c2} {
		assert.Equal(t, b.ID, c.ParentBatchID)
		assert.Equal(t, b.ID, c.SourceBatchID, "primera generación apunta al original")
		assert.Equal(t, entity.SourceTypeRescue, c.SourceType)
		assert.Equal(t, b.CultivarID, c.CultivarID)
		assert.Equal(t, entity.BatchStatusActive, c.Status)
		assertConservation(t, c)
	}

	assert.Equal(t, 0, f.store.areas[areaGerm].CurrentOccupancy)
	assert.Equal(t, 10, f.store.areas[areaVege].CurrentOccupancy)
	assert.Equal(t, 20, f.store.areas[areaFlor].CurrentOccupancy)
	assertOccupancy(t, f)

	// Las plantas siguieron a los hijos.
	n1, _ := (&fakePlantRepo{f.store}).CountActiveByBatch(c1.ID)
	n2, _ := (&fakePlantRepo{f.store}).CountActiveByBatch(c2.ID)
	n0, _ := (&fakePlantRepo{f.store}).CountActiveByBatch(b.ID)
	assert.Equal(t, 10, n1)
	assert.Equal(t, 20, n2)
	assert.Equal(t, 0, n0)

	act := lastActivity(f, b.ID)
	require.NotNil(t, act)
	assert.Equal(t, entity.ActivityBatchSplit, act.ActivityType)
	assert.Equal(t, 30, act.QuantityBefore)
	assert.Equal(t, 0, act.QuantityAfter)
	assert.ElementsMatch(t, res.NewBatchIDs, act.Metadata["new_batch_ids"])
}

func TestSplit_SumaIncorrectaRechazada(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 30, false)

	for _, groups := range [][]batches.SplitGroup{
		{{Quantity: 10, ToAreaID: areaVege}},                                   // falta resto
		{{Quantity: 10, ToAreaID: areaVege}, {Quantity: 25, ToAreaID: areaFlor}}, // se pasa
	} {
		_, err := f.uc.Split(context.Background(), testCompany, testUser, b.ID, batches.SplitInput{Groups: groups})
		assert.ErrorIs(t, err, domain.ErrQuantityMismatch)
	}

	assert.Equal(t, entity.BatchStatusActive, f.batch(b.ID).Status)
	children, _ := (&fakeBatchRepo{f.store}).ListChildren(b.ID)
	assert.Empty(t, children)
}

func TestSplit_PreservaRaizTransitiva(t *testing.T) {
	f := newFixture(t)
	root := f.createBatch(t, 20, false)

	res1, err := f.uc.Split(context.Background(), testCompany, testUser, root.ID, batches.SplitInput{
		Groups: []batches.SplitGroup{{Quantity: 20, ToAreaID: areaVege}},
	})
	require.NoError(t, err)

	child := res1.NewBatchIDs[0]
	res2, err := f.uc.Split(context.Background(), testCompany, testUser, child, batches.SplitInput{
		Groups: []batches.SplitGroup{{Quantity: 20, ToAreaID: areaFlor}},
	})
	require.NoError(t, err)

	grandchild := f.batch(res2.NewBatchIDs[0])
	assert.Equal(t, child, grandchild.ParentBatchID)
	assert.Equal(t, root.ID, grandchild.SourceBatchID, "la raíz se preserva transitivamente")
}

// ── Merge ──

func TestMerge_AcumulaEnPrimario(t *testing.T) {
	f := newFixture(t)
	p := f.createBatch(t, 20, true)
	s := f.createBatch(t, 10, true)

	// El secundario arrastra una pérdida previa para verificar la mortalidad combinada.
	require.NoError(t, f.uc.RecordLoss(context.Background(), testCompany, testUser, s.ID, batches.LossInput{Quantity: 2, Reason: "plaga"}))
	require.NoError(t, f.uc.Move(context.Background(), testCompany, testUser, s.ID, batches.MoveInput{ToAreaID: areaVege}))
	require.NoError(t, f.uc.Move(context.Background(), testCompany, testUser, s.ID, batches.MoveInput{ToAreaID: areaGerm}))

	err := f.uc.Merge(context.Background(), testCompany, testUser, p.ID, s.ID, "consolidación")
	require.NoError(t, err)

	gotP := f.batch(p.ID)
	gotS := f.batch(s.ID)
	assert.Equal(t, 28, gotP.CurrentQuantity) // 20 + 8
	assert.Equal(t, 30, gotP.InitialQuantity)
	assert.Equal(t, 2, gotP.LostQuantity)
	assert.Equal(t, 7, gotP.MortalityRate) // round(2/30*100)
	assertConservation(t, gotP)

	assert.Equal(t, entity.BatchStatusMerged, gotS.Status)
	assert.Equal(t, 0, gotS.CurrentQuantity)
	assert.Equal(t, p.ID, gotS.MergedIntoBatchID)
	assertOccupancy(t, f)

	// Plantas del secundario re-apuntadas al primario.
	nP, _ := (&fakePlantRepo{f.store}).CountActiveByBatch(p.ID)
	nS, _ := (&fakePlantRepo{f.store}).CountActiveByBatch(s.ID)
	assert.Equal(t, 28, nP)
	assert.Equal(t, 0, nS)

	// Dos actividades: cada historial queda completo.
	assert.Equal(t, entity.ActivityBatchMerge, lastActivity(f, p.ID).ActivityType)
	assert.Equal(t, entity.ActivityBatchMerge, lastActivity(f, s.ID).ActivityType)
	assert.Equal(t, 0, lastActivity(f, s.ID).QuantityAfter)
}

func TestMerge_CultivarDistintoRechazado(t *testing.T) {
	// Escenario de la especificación de producto: fusión incompatible no muta nada.
	f := newFixture(t)
	p := f.createBatch(t, 20, false)

	s, err := f.uc.Create(context.Background(), batches.CreateInput{
		CompanyID: testCompany, UserID: testUser,
		FacilityID: testFacility, AreaID: areaGerm,
		CropTypeID: "cultivo-cannabis", CultivarID: "cultivar-kush",
		InitialQuantity: 10, CurrentPhase: "germination",
	})
	require.NoError(t, err)

	err = f.uc.Merge(context.Background(), testCompany, testUser, p.ID, s.ID, "")
	assert.ErrorIs(t, err, domain.ErrIncompatibleBatch)

	assert.Equal(t, 20, f.batch(p.ID).CurrentQuantity)
	assert.Equal(t, 10, f.batch(s.ID).CurrentQuantity)
	assert.Equal(t, entity.BatchStatusActive, f.batch(s.ID).Status)
	assert.Empty(t, f.batch(s.ID).MergedIntoBatchID)
}

func TestMerge_FaseDistintaRechazada(t *testing.T) {
	f := newFixture(t)
	p := f.createBatch(t, 20, false)
	s := f.createBatch(t, 10, false)
	require.NoError(t, f.uc.UpdatePhase(context.Background(), testCompany, testUser, s.ID, "vegetation", ""))

	err := f.uc.Merge(context.Background(), testCompany, testUser, p.ID, s.ID, "")
	assert.ErrorIs(t, err, domain.ErrIncompatibleBatch)
}

func TestMerge_SecundarioQuedaTerminal(t *testing.T) {
	f := newFixture(t)
	p := f.createBatch(t, 20, false)
	s := f.createBatch(t, 10, false)
	require.NoError(t, f.uc.Merge(context.Background(), testCompany, testUser, p.ID, s.ID, ""))

	// El secundario fusionado no admite más operaciones.
	err := f.uc.Move(context.Background(), testCompany, testUser, s.ID, batches.MoveInput{ToAreaID: areaVege})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	err = f.uc.RecordLoss(context.Background(), testCompany, testUser, s.ID, batches.LossInput{Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	err = f.uc.Merge(context.Background(), testCompany, testUser, p.ID, s.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ── Harvest ──

func TestHarvest_PreservaCantidadYLiberaArea(t *testing.T) {
	// Escenario de la especificación de producto: cosechar no pone la cantidad a cero.
	f := newFixture(t)
	b := f.createBatch(t, 50, false)

	humidity := decimal.NewFromInt(12)
	err := f.uc.Harvest(context.Background(), testCompany, testUser, b.ID, batches.HarvestInput{
		TotalWeight:  decimal.NewFromInt(500),
		WeightUnit:   "g",
		QualityGrade: "A",
		HumidityPct:  &humidity,
	})
	require.NoError(t, err)

	got := f.batch(b.ID)
	assert.Equal(t, entity.BatchStatusHarvested, got.Status)
	assert.Equal(t, 50, got.CurrentQuantity, "la cosecha no altera la cantidad de registro")
	assert.Empty(t, got.AreaID, "el lote cosechado deja de ocupar área")
	assert.NotNil(t, got.HarvestDate)
	assert.Equal(t, "A", got.QualityGrade)
	assert.Equal(t, 0, f.store.areas[areaGerm].CurrentOccupancy)
	assertOccupancy(t, f)

	require.Len(t, f.store.harvests, 1)
	assert.True(t, f.store.orders[testOrder].ActualYield.Equal(decimal.NewFromInt(500)))

	act := lastActivity(f, b.ID)
	require.NotNil(t, act)
	assert.Equal(t, entity.ActivityHarvest, act.ActivityType)
	assert.Equal(t, "500", act.Metadata["total_weight"])
	assert.Equal(t, "A", act.Metadata["quality_grade"])
}

func TestHarvest_PesoInvalido(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 50, false)
	err := f.uc.Harvest(context.Background(), testCompany, testUser, b.ID, batches.HarvestInput{TotalWeight: decimal.Zero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Archive ──

func TestArchive_SoloEstadosTerminales(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, false)

	// Activo: no se puede archivar directamente.
	err := f.uc.Archive(context.Background(), testCompany, testUser, b.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	require.NoError(t, f.uc.Harvest(context.Background(), testCompany, testUser, b.ID, batches.HarvestInput{
		TotalWeight: decimal.NewFromInt(100),
	}))
	occBefore := f.store.areas[areaGerm].CurrentOccupancy

	require.NoError(t, f.uc.Archive(context.Background(), testCompany, testUser, b.ID, "campaña cerrada"))
	got := f.batch(b.ID)
	assert.Equal(t, entity.BatchStatusArchived, got.Status)
	assert.Equal(t, occBefore, f.store.areas[areaGerm].CurrentOccupancy, "archivar no toca ocupación")

	// Archivar dos veces tampoco está permitido.
	err = f.uc.Archive(context.Background(), testCompany, testUser, b.ID, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

// ── UpdatePhase ──

func TestUpdatePhase_SincronizaPlantas(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 5, true)

	err := f.uc.UpdatePhase(context.Background(), testCompany, testUser, b.ID, "vegetation", "raíces listas")
	require.NoError(t, err)

	assert.Equal(t, "vegetation", f.batch(b.ID).CurrentPhase)
	plants, _ := (&fakePlantRepo{f.store}).ListByBatch(b.ID)
	for _, p := range plants {
		assert.Equal(t, "vegetation", p.PlantStage)
	}

	act := lastActivity(f, b.ID)
	require.NotNil(t, act)
	assert.Equal(t, entity.ActivityPhaseTransition, act.ActivityType)
	assert.Equal(t, "germination", act.Metadata["previous_phase"])
	assert.Equal(t, "vegetation", act.Metadata["new_phase"])
}

// ── Propiedades transversales ──

func TestOperacionesSobreLotePerdidoFallan(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, false)
	require.NoError(t, f.uc.RecordLoss(context.Background(), testCompany, testUser, b.ID, batches.LossInput{Quantity: 10}))

	ctx := context.Background()
	assert.ErrorIs(t, f.uc.Move(ctx, testCompany, testUser, b.ID, batches.MoveInput{ToAreaID: areaVege}), domain.ErrInvalidState)
	assert.ErrorIs(t, f.uc.RecordLoss(ctx, testCompany, testUser, b.ID, batches.LossInput{Quantity: 1}), domain.ErrInvalidState)
	assert.ErrorIs(t, f.uc.UpdatePhase(ctx, testCompany, testUser, b.ID, "vegetation", ""), domain.ErrInvalidState)
	assert.ErrorIs(t, f.uc.Harvest(ctx, testCompany, testUser, b.ID, batches.HarvestInput{TotalWeight: decimal.NewFromInt(1)}), domain.ErrInvalidState)
	_, err := f.uc.Split(ctx, testCompany, testUser, b.ID, batches.SplitInput{Groups: []batches.SplitGroup{{Quantity: 10, ToAreaID: areaVege}}})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// Pero sí puede archivarse.
	assert.NoError(t, f.uc.Archive(ctx, testCompany, testUser, b.ID, ""))
}

func TestSecuenciaCompleta_ConservacionYOcupacion(t *testing.T) {
	// Create -> Move -> Loss -> Split -> Merge -> Harvest manteniendo las dos
	// leyes: conservación de cantidades y consistencia de ocupación.
	f := newFixture(t)
	ctx := context.Background()

	b := f.createBatch(t, 40, false)
	assertOccupancy(t, f)

	require.NoError(t, f.uc.Move(ctx, testCompany, testUser, b.ID, batches.MoveInput{ToAreaID: areaVege}))
	assertOccupancy(t, f)
	assertConservation(t, f.batch(b.ID))

	require.NoError(t, f.uc.RecordLoss(ctx, testCompany, testUser, b.ID, batches.LossInput{Quantity: 10, Reason: "plaga"}))
	assertOccupancy(t, f)
	assertConservation(t, f.batch(b.ID))

	res, err := f.uc.Split(ctx, testCompany, testUser, b.ID, batches.SplitInput{
		Groups: []batches.SplitGroup{
			{Quantity: 15, ToAreaID: areaVege},
			{Quantity: 15, ToAreaID: areaFlor},
		},
	})
	require.NoError(t, err)
	assertOccupancy(t, f)

	c1, c2 := res.NewBatchIDs[0], res.NewBatchIDs[1]
	require.NoError(t, f.uc.Merge(ctx, testCompany, testUser, c1, c2, "reunificación"))
	assertOccupancy(t, f)
	assertConservation(t, f.batch(c1))

	require.NoError(t, f.uc.Harvest(ctx, testCompany, testUser, c1, batches.HarvestInput{TotalWeight: decimal.NewFromInt(900)}))
	assertOccupancy(t, f)

	got := f.batch(c1)
	assert.Equal(t, entity.BatchStatusHarvested, got.Status)
	assert.Equal(t, 30, got.CurrentQuantity)
	for _, a := range f.store.areas {
		if a.ID != "area-ajena" {
			assert.Zero(t, a.CurrentOccupancy, "todo el material salió de cultivo: %s", a.ID)
		}
	}
}

// ── Consultas ──

func TestChildrenYLineage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBatch(t, 30, false)

	res, err := f.uc.Split(ctx, testCompany, testUser, b.ID, batches.SplitInput{
		Groups: []batches.SplitGroup{
			{Quantity: 10, ToAreaID: areaVege},
			{Quantity: 20, ToAreaID: areaFlor},
		},
	})
	require.NoError(t, err)

	children, err := f.uc.Children(ctx, testCompany, b.ID)
	require.NoError(t, err)
	require.Len(t, children, 2)
	for _, c := range children {
		assert.Equal(t, b.ID, c.ParentBatchID)
	}

	lineage, err := f.uc.Lineage(ctx, testCompany, res.NewBatchIDs[0])
	require.NoError(t, err)
	assert.Equal(t, b.ID, lineage.RootID)
	assert.Len(t, lineage.Batches, 3) // raíz + dos hijos
	assert.Contains(t, lineage.Links, batchdomain.Link{Kind: batchdomain.LinkParentOf, From: b.ID, To: res.NewBatchIDs[0]})
}

func TestHistory_DevuelveActividadesDelLote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.createBatch(t, 10, false)
	require.NoError(t, f.uc.Move(ctx, testCompany, testUser, b.ID, batches.MoveInput{ToAreaID: areaVege}))
	require.NoError(t, f.uc.RecordLoss(ctx, testCompany, testUser, b.ID, batches.LossInput{Quantity: 2}))

	history, err := f.uc.History(ctx, testCompany, b.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Otra empresa no puede leer el historial.
	_, err = f.uc.History(ctx, "empresa-2", b.ID, 0, 0)
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)
}

func TestGetByID_Pertenencia(t *testing.T) {
	f := newFixture(t)
	b := f.createBatch(t, 10, false)

	got, err := f.uc.GetByID(context.Background(), testCompany, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.BatchCode, got.BatchCode)

	_, err = f.uc.GetByID(context.Background(), "empresa-2", b.ID)
	assert.ErrorIs(t, err, domain.ErrOwnershipMismatch)

	_, err = f.uc.GetByID(context.Background(), testCompany, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
