// Package memrepo implementa los puertos de persistencia en memoria. Se usa
// en las pruebas de los casos de uso para ejercitar los flujos completos
// sin PostgreSQL.
package memrepo

import (
	"sort"

	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/domain/repository"
)

// Store estado compartido entre los repos en memoria. Las secuencias de id
// son globales, como un BIGSERIAL por esquema simplificado.
type Store struct {
	seq int64

	BOMs          map[int64]*entity.BOM
	BOMItems      map[int64]*entity.BOMItem
	Drafts        map[int64]*entity.DraftBOMItem
	Parts         map[int64]*entity.Part
	Manufacturers map[int64]*entity.Manufacturer
	Suppliers     map[int64]*entity.Supplier
	Mappings      []*entity.SupplierManufacturer
	RFQs          map[int64]*entity.RFQ
	RFQItems      map[int64]*entity.RFQItem
	Users         map[string]*entity.User
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		BOMs:          make(map[int64]*entity.BOM),
		BOMItems:      make(map[int64]*entity.BOMItem),
		Drafts:        make(map[int64]*entity.DraftBOMItem),
		Parts:         make(map[int64]*entity.Part),
		Manufacturers: make(map[int64]*entity.Manufacturer),
		Suppliers:     make(map[int64]*entity.Supplier),
		RFQs:          make(map[int64]*entity.RFQ),
		RFQItems:      make(map[int64]*entity.RFQItem),
		Users:         make(map[string]*entity.User),
	}
}

// NextID avanza la secuencia global.
func (s *Store) NextID() int64 {
	s.seq++
	return s.seq
}

// snapshot copia el estado completo del almacén. Los repos guardan y
// devuelven copias por valor, así que copiar cada struct alcanza.
func (s *Store) snapshot() *Store {
	cp := NewStore()
	cp.seq = s.seq
	for id, b := range s.BOMs {
		v := *b
		cp.BOMs[id] = &v
	}
	for id, it := range s.BOMItems {
		v := *it
		cp.BOMItems[id] = &v
	}
	for id, d := range s.Drafts {
		v := *d
		cp.Drafts[id] = &v
	}
	for id, p := range s.Parts {
		v := *p
		cp.Parts[id] = &v
	}
	for id, m := range s.Manufacturers {
		v := *m
		cp.Manufacturers[id] = &v
	}
	for id, sup := range s.Suppliers {
		v := *sup
		cp.Suppliers[id] = &v
	}
	for _, mp := range s.Mappings {
		v := *mp
		cp.Mappings = append(cp.Mappings, &v)
	}
	for id, q := range s.RFQs {
		v := *q
		cp.RFQs[id] = &v
	}
	for id, it := range s.RFQItems {
		v := *it
		cp.RFQItems[id] = &v
	}
	for id, u := range s.Users {
		v := *u
		cp.Users[id] = &v
	}
	return cp
}

// restore regresa el almacén a una instantánea previa.
func (s *Store) restore(snap *Store) {
	*s = *snap
}

// ── Repos ────────────────────────────────────────────────────────────────

// Repos entrega las vistas de repositorio sobre el mismo almacén.
func (s *Store) BOMRepo() repository.BOMRepository           { return &bomRepo{s} }
func (s *Store) PartRepo() repository.PartRepository         { return &partRepo{s} }
func (s *Store) RFQRepo() repository.RFQRepository           { return &rfqRepo{s} }
func (s *Store) SupplierRepo() repository.SupplierRepository { return &supplierRepo{s} }
func (s *Store) UserRepo() repository.UserRepository         { return &userRepo{s} }

// ── BOMs ─────────────────────────────────────────────────────────────────

type bomRepo struct{ s *Store }

var _ repository.BOMRepository = (*bomRepo)(nil)

func (r *bomRepo) Create(b *entity.BOM) error {
	b.ID = r.s.NextID()
	cp := *b
	r.s.BOMs[b.ID] = &cp
	return nil
}

func (r *bomRepo) GetByID(id int64) (*entity.BOM, error) {
	b, ok := r.s.BOMs[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *bomRepo) List(limit, offset int) ([]*entity.BOM, error) {
	return r.listWhere(func(*entity.BOM) bool { return true })
}

func (r *bomRepo) ListByStatus(status string, limit, offset int) ([]*entity.BOM, error) {
	return r.listWhere(func(b *entity.BOM) bool { return b.Status == status })
}

func (r *bomRepo) listWhere(keep func(*entity.BOM) bool) ([]*entity.BOM, error) {
	var out []*entity.BOM
	for _, b := range r.s.BOMs {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *bomRepo) Update(b *entity.BOM) error {
	if _, ok := r.s.BOMs[b.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *b
	r.s.BOMs[b.ID] = &cp
	return nil
}

func (r *bomRepo) Delete(id int64) error {
	for _, q := range r.s.RFQs {
		if q.BOMID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.BOMs, id)
	for itemID, it := range r.s.BOMItems {
		if it.BOMID == id {
			delete(r.s.BOMItems, itemID)
		}
	}
	for draftID, d := range r.s.Drafts {
		if d.BOMID == id {
			delete(r.s.Drafts, draftID)
		}
	}
	return nil
}

func (r *bomRepo) CreateItem(item *entity.BOMItem) error {
	for _, it := range r.s.BOMItems {
		if it.BOMID == item.BOMID && it.PartID == item.PartID {
			return domain.ErrDuplicate
		}
	}
	item.ID = r.s.NextID()
	cp := *item
	r.s.BOMItems[item.ID] = &cp
	return nil
}

func (r *bomRepo) UpdateItem(item *entity.BOMItem) error {
	if _, ok := r.s.BOMItems[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.BOMItems[item.ID] = &cp
	return nil
}

func (r *bomRepo) DeleteItem(id int64) error {
	for _, ri := range r.s.RFQItems {
		if ri.BOMItemID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.BOMItems, id)
	return nil
}

func (r *bomRepo) GetItemByID(id int64) (*entity.BOMItem, error) {
	it, ok := r.s.BOMItems[id]
	if !ok {
		return nil, nil
	}
	return r.withCatalog(it), nil
}

func (r *bomRepo) GetItemByPart(bomID, partID int64) (*entity.BOMItem, error) {
	for _, it := range r.s.BOMItems {
		if it.BOMID == bomID && it.PartID == partID {
			return r.withCatalog(it), nil
		}
	}
	return nil, nil
}

func (r *bomRepo) ListItems(bomID int64) ([]*entity.BOMItem, error) {
	var out []*entity.BOMItem
	for _, it := range r.s.BOMItems {
		if it.BOMID == bomID {
			out = append(out, r.withCatalog(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, nil
}

func (r *bomRepo) HasItems(bomID int64) (bool, error) {
	for _, it := range r.s.BOMItems {
		if it.BOMID == bomID {
			return true, nil
		}
	}
	return false, nil
}

// withCatalog copia la línea y llena los campos de join desde el catálogo.
func (r *bomRepo) withCatalog(it *entity.BOMItem) *entity.BOMItem {
	cp := *it
	if p, ok := r.s.Parts[it.PartID]; ok {
		cp.PartNumber = p.PartNumber
		cp.PartDescription = p.Description
		cp.ManufacturerID = p.ManufacturerID
		if m, ok := r.s.Manufacturers[p.ManufacturerID]; ok {
			cp.ManufacturerName = m.Name
		}
	}
	return &cp
}

func (r *bomRepo) CreateDraft(d *entity.DraftBOMItem) error {
	for _, existing := range r.s.Drafts {
		if existing.BOMID == d.BOMID && existing.PartNumber == d.PartNumber {
			return domain.ErrDuplicate
		}
	}
	d.ID = r.s.NextID()
	cp := *d
	r.s.Drafts[d.ID] = &cp
	return nil
}

func (r *bomRepo) UpdateDraft(d *entity.DraftBOMItem) error {
	if _, ok := r.s.Drafts[d.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *d
	r.s.Drafts[d.ID] = &cp
	return nil
}

func (r *bomRepo) DeleteDraft(id int64) error {
	delete(r.s.Drafts, id)
	return nil
}

func (r *bomRepo) GetDraftByID(id int64) (*entity.DraftBOMItem, error) {
	d, ok := r.s.Drafts[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r *bomRepo) GetDraftByPartNumber(bomID int64, partNumber string) (*entity.DraftBOMItem, error) {
	for _, d := range r.s.Drafts {
		if d.BOMID == bomID && d.PartNumber == partNumber {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *bomRepo) ListDrafts(bomID int64) ([]*entity.DraftBOMItem, error) {
	var out []*entity.DraftBOMItem
	for _, d := range r.s.Drafts {
		if d.BOMID == bomID && !d.IsResolved {
			cp := *d
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, nil
}

func (r *bomRepo) HasDrafts(bomID int64) (bool, error) {
	for _, d := range r.s.Drafts {
		if d.BOMID == bomID && !d.IsResolved {
			return true, nil
		}
	}
	return false, nil
}

// ── Partes ───────────────────────────────────────────────────────────────

type partRepo struct{ s *Store }

var _ repository.PartRepository = (*partRepo)(nil)

func (r *partRepo) Create(p *entity.Part) error {
	for _, existing := range r.s.Parts {
		if existing.PartNumber == p.PartNumber {
			return domain.ErrDuplicate
		}
	}
	p.ID = r.s.NextID()
	cp := *p
	r.s.Parts[p.ID] = &cp
	return nil
}

func (r *partRepo) GetByID(id int64) (*entity.Part, error) {
	p, ok := r.s.Parts[id]
	if !ok {
		return nil, nil
	}
	return r.withManufacturer(p), nil
}

func (r *partRepo) GetByPartNumber(partNumber string) (*entity.Part, error) {
	for _, p := range r.s.Parts {
		if p.PartNumber == partNumber {
			return r.withManufacturer(p), nil
		}
	}
	return nil, nil
}

func (r *partRepo) List(limit, offset int) ([]*entity.Part, error) {
	var out []*entity.Part
	for _, p := range r.s.Parts {
		out = append(out, r.withManufacturer(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, nil
}

func (r *partRepo) Search(term string, limit int) ([]*entity.Part, error) {
	return r.List(limit, 0)
}

func (r *partRepo) Update(p *entity.Part) error {
	if _, ok := r.s.Parts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	r.s.Parts[p.ID] = &cp
	return nil
}

func (r *partRepo) Delete(id int64) error {
	for _, it := range r.s.BOMItems {
		if it.PartID == id {
			return domain.ErrInUse
		}
	}
	delete(r.s.Parts, id)
	return nil
}

func (r *partRepo) withManufacturer(p *entity.Part) *entity.Part {
	cp := *p
	if m, ok := r.s.Manufacturers[p.ManufacturerID]; ok {
		cp.ManufacturerName = m.Name
	}
	return &cp
}

// ── RFQs ─────────────────────────────────────────────────────────────────

type rfqRepo struct{ s *Store }

var _ repository.RFQRepository = (*rfqRepo)(nil)

func (r *rfqRepo) Create(q *entity.RFQ) error {
	q.ID = r.s.NextID()
	cp := *q
	r.s.RFQs[q.ID] = &cp
	return nil
}

func (r *rfqRepo) GetByID(id int64) (*entity.RFQ, error) {
	q, ok := r.s.RFQs[id]
	if !ok {
		return nil, nil
	}
	return r.withSupplier(q), nil
}

func (r *rfqRepo) GetByBOMAndSupplier(bomID, supplierID int64) (*entity.RFQ, error) {
	for _, q := range r.s.RFQs {
		if q.BOMID == bomID && q.SupplierID == supplierID && q.Status == entity.RFQStatusDraft {
			return r.withSupplier(q), nil
		}
	}
	return nil, nil
}

func (r *rfqRepo) List(filter repository.RFQFilter) ([]*entity.RFQ, error) {
	var out []*entity.RFQ
	for _, q := range r.s.RFQs {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		if filter.SupplierID != 0 && q.SupplierID != filter.SupplierID {
			continue
		}
		if filter.BOMID != 0 && q.BOMID != filter.BOMID {
			continue
		}
		out = append(out, r.withSupplier(q))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *rfqRepo) Update(q *entity.RFQ) error {
	if _, ok := r.s.RFQs[q.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *q
	r.s.RFQs[q.ID] = &cp
	return nil
}

func (r *rfqRepo) Delete(id int64) error {
	delete(r.s.RFQs, id)
	for itemID, it := range r.s.RFQItems {
		if it.RFQID == id {
			delete(r.s.RFQItems, itemID)
		}
	}
	return nil
}

func (r *rfqRepo) HasByBOM(bomID int64) (bool, error) {
	for _, q := range r.s.RFQs {
		if q.BOMID == bomID {
			return true, nil
		}
	}
	return false, nil
}

func (r *rfqRepo) withSupplier(q *entity.RFQ) *entity.RFQ {
	cp := *q
	if s, ok := r.s.Suppliers[q.SupplierID]; ok {
		cp.SupplierName = s.Name
		cp.SupplierEmail = s.ContactEmail
	}
	return &cp
}

func (r *rfqRepo) CreateItem(item *entity.RFQItem) error {
	for _, it := range r.s.RFQItems {
		if it.RFQID == item.RFQID && it.BOMItemID == item.BOMItemID {
			return domain.ErrDuplicate
		}
	}
	item.ID = r.s.NextID()
	cp := *item
	r.s.RFQItems[item.ID] = &cp
	return nil
}

func (r *rfqRepo) UpdateItem(item *entity.RFQItem) error {
	if _, ok := r.s.RFQItems[item.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *item
	r.s.RFQItems[item.ID] = &cp
	return nil
}

func (r *rfqRepo) DeleteItem(id int64) error {
	delete(r.s.RFQItems, id)
	return nil
}

func (r *rfqRepo) GetItemByID(id int64) (*entity.RFQItem, error) {
	it, ok := r.s.RFQItems[id]
	if !ok {
		return nil, nil
	}
	return r.withBOMItem(it), nil
}

func (r *rfqRepo) ItemExists(rfqID, bomItemID int64) (bool, error) {
	for _, it := range r.s.RFQItems {
		if it.RFQID == rfqID && it.BOMItemID == bomItemID {
			return true, nil
		}
	}
	return false, nil
}

func (r *rfqRepo) ListItems(rfqID int64) ([]*entity.RFQItem, error) {
	var out []*entity.RFQItem
	for _, it := range r.s.RFQItems {
		if it.RFQID == rfqID {
			out = append(out, r.withBOMItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PartNumber < out[j].PartNumber })
	return out, nil
}

func (r *rfqRepo) withBOMItem(it *entity.RFQItem) *entity.RFQItem {
	cp := *it
	if bi, ok := r.s.BOMItems[it.BOMItemID]; ok {
		if p, ok := r.s.Parts[bi.PartID]; ok {
			cp.PartNumber = p.PartNumber
			cp.PartDescription = p.Description
			if m, ok := r.s.Manufacturers[p.ManufacturerID]; ok {
				cp.ManufacturerName = m.Name
			}
		}
	}
	return &cp
}

// ── Proveedores ──────────────────────────────────────────────────────────

type supplierRepo struct{ s *Store }

var _ repository.SupplierRepository = (*supplierRepo)(nil)

func (r *supplierRepo) Create(sup *entity.Supplier) error {
	for _, existing := range r.s.Suppliers {
		if existing.Name == sup.Name {
			return domain.ErrDuplicate
		}
	}
	sup.ID = r.s.NextID()
	cp := *sup
	r.s.Suppliers[sup.ID] = &cp
	return nil
}

func (r *supplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	sup, ok := r.s.Suppliers[id]
	if !ok {
		return nil, nil
	}
	cp := *sup
	return &cp, nil
}

func (r *supplierRepo) List(limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, sup := range r.s.Suppliers {
		cp := *sup
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *supplierRepo) Update(sup *entity.Supplier) error {
	if _, ok := r.s.Suppliers[sup.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *sup
	r.s.Suppliers[sup.ID] = &cp
	return nil
}

func (r *supplierRepo) Delete(id int64) error {
	delete(r.s.Suppliers, id)
	return nil
}

func (r *supplierRepo) AddManufacturer(supplierID, manufacturerID int64) error {
	for _, mp := range r.s.Mappings {
		if mp.SupplierID == supplierID && mp.ManufacturerID == manufacturerID {
			return domain.ErrDuplicate
		}
	}
	r.s.Mappings = append(r.s.Mappings, &entity.SupplierManufacturer{
		ID:             r.s.NextID(),
		SupplierID:     supplierID,
		ManufacturerID: manufacturerID,
	})
	return nil
}

func (r *supplierRepo) RemoveManufacturer(supplierID, manufacturerID int64) error {
	for i, mp := range r.s.Mappings {
		if mp.SupplierID == supplierID && mp.ManufacturerID == manufacturerID {
			r.s.Mappings = append(r.s.Mappings[:i], r.s.Mappings[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *supplierRepo) ListMappingsBySupplier(supplierID int64) ([]*entity.SupplierManufacturer, error) {
	var out []*entity.SupplierManufacturer
	for _, mp := range r.s.Mappings {
		if mp.SupplierID == supplierID {
			out = append(out, r.withNames(mp))
		}
	}
	return out, nil
}

func (r *supplierRepo) ListMappingsByManufacturers(manufacturerIDs []int64) ([]*entity.SupplierManufacturer, error) {
	var out []*entity.SupplierManufacturer
	for _, mp := range r.s.Mappings {
		for _, id := range manufacturerIDs {
			if mp.ManufacturerID == id {
				out = append(out, r.withNames(mp))
				break
			}
		}
	}
	return out, nil
}

func (r *supplierRepo) withNames(mp *entity.SupplierManufacturer) *entity.SupplierManufacturer {
	cp := *mp
	if s, ok := r.s.Suppliers[mp.SupplierID]; ok {
		cp.SupplierName = s.Name
	}
	if m, ok := r.s.Manufacturers[mp.ManufacturerID]; ok {
		cp.ManufacturerName = m.Name
	}
	return &cp
}

// ── Usuarios ─────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

var _ repository.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(u *entity.User) error {
	if _, ok := r.s.Users[u.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *u
	r.s.Users[u.ID] = &cp
	return nil
}

func (r *userRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.Users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *userRepo) FindByUsername(username string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.s.Users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

// ── Helpers de seed para pruebas ─────────────────────────────────────────

// SeedManufacturer inserta un fabricante directo al almacén.
func (s *Store) SeedManufacturer(name string) int64 {
	id := s.NextID()
	s.Manufacturers[id] = &entity.Manufacturer{ID: id, Name: name}
	return id
}
