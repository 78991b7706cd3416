package batches_test

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/verdeflow/trazo-api/internal/application/batches"
	"github.com/verdeflow/trazo-api/internal/domain/entity"
	"github.com/verdeflow/trazo-api/internal/domain/repository"
)

// Fakes en memoria para el motor de lotes. Emulan la semántica del adaptador
// PostgreSQL: las lecturas devuelven copias (mutar el resultado no persiste
// nada hasta Update) y el contador de códigos es monótono por empresa y día.

type fakeStore struct {
	batches    map[string]*entity.Batch
	plants     map[string]*entity.Plant
	areas      map[string]*entity.Area
	facilities map[string]*entity.Facility
	cropTypes  map[string]*entity.CropType
	cultivars  map[string]*entity.Cultivar
	orders     map[string]*entity.ProductionOrder
	activities []*entity.Activity
	movements  []*entity.BatchMovement
	losses     []*entity.BatchLoss
	harvests   []*entity.BatchHarvest
	codeSeq    map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		batches:    map[string]*entity.Batch{},
		plants:     map[string]*entity.Plant{},
		areas:      map[string]*entity.Area{},
		facilities: map[string]*entity.Facility{},
		cropTypes:  map[string]*entity.CropType{},
		cultivars:  map[string]*entity.Cultivar{},
		orders:     map[string]*entity.ProductionOrder{},
		codeSeq:    map[string]int{},
	}
}

func cloneBatch(b *entity.Batch) *entity.Batch {
	if b == nil {
		return nil
	}
	c := *b
	return &c
}

// ── Batch ──

type fakeBatchRepo struct{ s *fakeStore }

func (r *fakeBatchRepo) Create(b *entity.Batch) error {
	r.s.batches[b.ID] = cloneBatch(b)
	return nil
}

func (r *fakeBatchRepo) GetByID(id string) (*entity.Batch, error) {
	return cloneBatch(r.s.batches[id]), nil
}

func (r *fakeBatchRepo) GetForUpdate(id string) (*entity.Batch, error) {
	return cloneBatch(r.s.batches[id]), nil
}

func (r *fakeBatchRepo) Update(b *entity.Batch) error {
	if _, ok := r.s.batches[b.ID]; !ok {
		return fmt.Errorf("update de lote inexistente %s", b.ID)
	}
	r.s.batches[b.ID] = cloneBatch(b)
	return nil
}

func (r *fakeBatchRepo) ListByCompany(companyID string, filter repository.BatchFilter) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.CompanyID != companyID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.AreaID != "" && b.AreaID != filter.AreaID {
			continue
		}
		out = append(out, cloneBatch(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BatchCode < out[j].BatchCode })
	return out, nil
}

func (r *fakeBatchRepo) ListChildren(parentID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.ParentBatchID == parentID {
			out = append(out, cloneBatch(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BatchCode < out[j].BatchCode })
	return out, nil
}

func (r *fakeBatchRepo) ListFamily(rootID string) ([]*entity.Batch, error) {
	var out []*entity.Batch
	for _, b := range r.s.batches {
		if b.ID == rootID || b.SourceBatchID == rootID {
			out = append(out, cloneBatch(b))
		}
	}
	return out, nil
}

// ── Plant ──

type fakePlantRepo struct{ s *fakeStore }

func (r *fakePlantRepo) BulkCreate(plants []*entity.Plant) error {
	for _, p := range plants {
		c := *p
		r.s.plants[p.ID] = &c
	}
	return nil
}

func (r *fakePlantRepo) ListByBatch(batchID string) ([]*entity.Plant, error) {
	var out []*entity.Plant
	for _, p := range r.s.plants {
		if p.BatchID == batchID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlantCode < out[j].PlantCode })
	return out, nil
}

func (r *fakePlantRepo) CountActiveByBatch(batchID string) (int, error) {
	n := 0
	for _, p := range r.s.plants {
		if p.BatchID == batchID && p.Status == entity.PlantStatusActive {
			n++
		}
	}
	return n, nil
}

func (r *fakePlantRepo) UpdateAreaByBatch(batchID, areaID string) error {
	for _, p := range r.s.plants {
		if p.BatchID == batchID {
			p.AreaID = areaID
		}
	}
	return nil
}

func (r *fakePlantRepo) UpdateStageByBatch(batchID, stage string) error {
	for _, p := range r.s.plants {
		if p.BatchID == batchID {
			p.PlantStage = stage
		}
	}
	return nil
}

func (r *fakePlantRepo) activeByCode(batchID string) []*entity.Plant {
	var out []*entity.Plant
	for _, p := range r.s.plants {
		if p.BatchID == batchID && p.Status == entity.PlantStatusActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlantCode < out[j].PlantCode })
	return out
}

func (r *fakePlantRepo) MarkDead(batchID string, quantity int) error {
	for _, p := range r.firstActive(batchID, quantity) {
		p.Status = entity.PlantStatusDead
		p.HealthStatus = "dead"
	}
	return nil
}

func (r *fakePlantRepo) firstActive(batchID string, quantity int) []*entity.Plant {
	active := r.activeByCode(batchID)
	if quantity > 0 && quantity < len(active) {
		active = active[:quantity]
	}
	return active
}

func (r *fakePlantRepo) ReassignBatch(fromBatchID, toBatchID, areaID string, quantity int) error {
	for _, p := range r.firstActive(fromBatchID, quantity) {
		p.BatchID = toBatchID
		p.AreaID = areaID
	}
	return nil
}

// ── Area / Facility ──

type fakeAreaRepo struct{ s *fakeStore }

func (r *fakeAreaRepo) Create(a *entity.Area) error {
	c := *a
	r.s.areas[a.ID] = &c
	return nil
}

func (r *fakeAreaRepo) GetByID(id string) (*entity.Area, error) {
	a := r.s.areas[id]
	if a == nil {
		return nil, nil
	}
	c := *a
	return &c, nil
}

func (r *fakeAreaRepo) ListByFacility(facilityID string, limit, offset int) ([]*entity.Area, error) {
	var out []*entity.Area
	for _, a := range r.s.areas {
		if a.FacilityID == facilityID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeAreaRepo) AdjustOccupancy(id string, delta int) error {
	a := r.s.areas[id]
	if a == nil {
		return fmt.Errorf("área inexistente %s", id)
	}
	a.CurrentOccupancy += delta
	if a.CurrentOccupancy < 0 {
		a.CurrentOccupancy = 0
	}
	return nil
}

type fakeFacilityRepo struct{ s *fakeStore }

func (r *fakeFacilityRepo) Create(f *entity.Facility) error {
	c := *f
	r.s.facilities[f.ID] = &c
	return nil
}

func (r *fakeFacilityRepo) GetByID(id string) (*entity.Facility, error) {
	f := r.s.facilities[id]
	if f == nil {
		return nil, nil
	}
	c := *f
	return &c, nil
}

func (r *fakeFacilityRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Facility, error) {
	var out []*entity.Facility
	for _, f := range r.s.facilities {
		if f.CompanyID == companyID {
			c := *f
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Catálogos ──

type fakeCropTypeRepo struct{ s *fakeStore }

func (r *fakeCropTypeRepo) GetByID(id string) (*entity.CropType, error) {
	ct := r.s.cropTypes[id]
	if ct == nil {
		return nil, nil
	}
	c := *ct
	return &c, nil
}

func (r *fakeCropTypeRepo) List() ([]*entity.CropType, error) {
	var out []*entity.CropType
	for _, ct := range r.s.cropTypes {
		c := *ct
		out = append(out, &c)
	}
	return out, nil
}

type fakeCultivarRepo struct{ s *fakeStore }

func (r *fakeCultivarRepo) Create(cv *entity.Cultivar) error {
	c := *cv
	r.s.cultivars[cv.ID] = &c
	return nil
}

func (r *fakeCultivarRepo) GetByID(id string) (*entity.Cultivar, error) {
	cv := r.s.cultivars[id]
	if cv == nil {
		return nil, nil
	}
	c := *cv
	return &c, nil
}

func (r *fakeCultivarRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Cultivar, error) {
	var out []*entity.Cultivar
	for _, cv := range r.s.cultivars {
		if cv.CompanyID == companyID {
			c := *cv
			out = append(out, &c)
		}
	}
	return out, nil
}

// ── Órdenes de producción ──

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(o *entity.ProductionOrder) error {
	c := *o
	r.s.orders[o.ID] = &c
	return nil
}

func (r *fakeOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	o := r.s.orders[id]
	if o == nil {
		return nil, nil
	}
	c := *o
	return &c, nil
}

func (r *fakeOrderRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range r.s.orders {
		if o.CompanyID == companyID {
			c := *o
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) AddActualPlants(id string, quantity int) error {
	o := r.s.orders[id]
	if o == nil {
		return fmt.Errorf("orden inexistente %s", id)
	}
	o.ActualPlants += quantity
	return nil
}

func (r *fakeOrderRepo) AddYield(id string, weight decimal.Decimal) error {
	o := r.s.orders[id]
	if o == nil {
		return fmt.Errorf("orden inexistente %s", id)
	}
	o.ActualYield = o.ActualYield.Add(weight)
	return nil
}

// ── Log y sub-libros ──

type fakeActivityRepo struct{ s *fakeStore }

func (r *fakeActivityRepo) Create(a *entity.Activity) error {
	c := *a
	r.s.activities = append(r.s.activities, &c)
	return nil
}

func (r *fakeActivityRepo) ListByEntity(entityType, entityID string, limit, offset int) ([]*entity.Activity, error) {
	var out []*entity.Activity
	for _, a := range r.s.activities {
		if a.EntityType == entityType && a.EntityID == entityID {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeMovementRepo struct{ s *fakeStore }

func (r *fakeMovementRepo) Create(m *entity.BatchMovement) error {
	c := *m
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *fakeMovementRepo) ListByBatch(batchID string) ([]*entity.BatchMovement, error) {
	var out []*entity.BatchMovement
	for _, m := range r.s.movements {
		if m.BatchID == batchID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeLossRepo struct{ s *fakeStore }

func (r *fakeLossRepo) Create(l *entity.BatchLoss) error {
	c := *l
	r.s.losses = append(r.s.losses, &c)
	return nil
}

func (r *fakeLossRepo) ListByBatch(batchID string) ([]*entity.BatchLoss, error) {
	var out []*entity.BatchLoss
	for _, l := range r.s.losses {
		if l.BatchID == batchID {
			c := *l
			out = append(out, &c)
		}
	}
	return out, nil
}

type fakeHarvestRepo struct{ s *fakeStore }

func (r *fakeHarvestRepo) Create(h *entity.BatchHarvest) error {
	c := *h
	r.s.harvests = append(r.s.harvests, &c)
	return nil
}

func (r *fakeHarvestRepo) GetByBatch(batchID string) (*entity.BatchHarvest, error) {
	for _, h := range r.s.harvests {
		if h.BatchID == batchID {
			c := *h
			return &c, nil
		}
	}
	return nil, nil
}

type fakeCodeRepo struct{ s *fakeStore }

func (r *fakeCodeRepo) NextSequence(companyID, day string) (int, error) {
	key := companyID + "|" + day
	r.s.codeSeq[key]++
	return r.s.codeSeq[key], nil
}

// ── TxRunner ──

type fakeTxRunner struct{ s *fakeStore }

func (t *fakeTxRunner) Run(_ context.Context, fn func(r batches.TxRepos) error) error {
	return fn(batches.TxRepos{
		Batches:    &fakeBatchRepo{t.s},
		Plants:     &fakePlantRepo{t.s},
		Areas:      &fakeAreaRepo{t.s},
		Orders:     &fakeOrderRepo{t.s},
		Activities: &fakeActivityRepo{t.s},
		Movements:  &fakeMovementRepo{t.s},
		Losses:     &fakeLossRepo{t.s},
		Harvests:   &fakeHarvestRepo{t.s},
		Codes:      &fakeCodeRepo{t.s},
		Cultivars:  &fakeCultivarRepo{t.s},
	})
}

// Verificación estática de que los fakes cumplen los puertos.
var (
	_ repository.BatchRepository           = (*fakeBatchRepo)(nil)
	_ repository.PlantRepository           = (*fakePlantRepo)(nil)
	_ repository.AreaRepository            = (*fakeAreaRepo)(nil)
	_ repository.FacilityRepository        = (*fakeFacilityRepo)(nil)
	_ repository.CropTypeRepository        = (*fakeCropTypeRepo)(nil)
	_ repository.CultivarRepository        = (*fakeCultivarRepo)(nil)
	_ repository.ProductionOrderRepository = (*fakeOrderRepo)(nil)
	_ repository.ActivityRepository        = (*fakeActivityRepo)(nil)
	_ repository.BatchMovementRepository   = (*fakeMovementRepo)(nil)
	_ repository.BatchLossRepository       = (*fakeLossRepo)(nil)
	_ repository.BatchHarvestRepository    = (*fakeHarvestRepo)(nil)
	_ repository.BatchCodeRepository       = (*fakeCodeRepo)(nil)
	_ batches.TxRunner                     = (*fakeTxRunner)(nil)
)
