package service

import (
	"context"
	"sort"
	"time"

	"github.com/caffeinepub/pharmacy-inventory-manager/internal/model"
	"github.com/caffeinepub/pharmacy-inventory-manager/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Absent rows surface exactly as gorm reports them so the services'
// not-found classification is exercised by the stubs too.
var errStubNotFound = gorm.ErrRecordNotFound

// ── Stub repositories ─────────────────────────────────────────────────────────
// In-memory implementations backing the service unit tests. Transactions are
// a no-op: services pass tx=nil through runTx when DB() returns nil.

type stubMedicineRepo struct {
	medicines map[string]*model.Medicine
}

func newStubMedicineRepo(meds ...*model.Medicine) *stubMedicineRepo {
	r := &stubMedicineRepo{medicines: make(map[string]*model.Medicine)}
	for _, m := range meds {
		cp := *m
		r.medicines[m.Name] = &cp
	}
	return r
}

func (r *stubMedicineRepo) Create(_ context.Context, m *model.Medicine) error {
	r.medicines[m.Name] = m
	return nil
}

func (r *stubMedicineRepo) Save(_ context.Context, m *model.Medicine) error {
	r.medicines[m.Name] = m
	return nil
}

func (r *stubMedicineRepo) FindByName(_ context.Context, name string) (*model.Medicine, error) {
	m, ok := r.medicines[name]
	if !ok {
		return nil, errStubNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *stubMedicineRepo) FindAll(_ context.Context) ([]model.Medicine, error) {
	names := make([]string, 0, len(r.medicines))
	for name := range r.medicines {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]model.Medicine, 0, len(names))
	for _, name := range names {
		out = append(out, *r.medicines[name])
	}
	return out, nil
}

func (r *stubMedicineRepo) DeleteByName(_ context.Context, name string) error {
	delete(r.medicines, name)
	return nil
}

var _ repository.MedicineRepository = (*stubMedicineRepo)(nil)

type stubDoctorRepo struct {
	doctors map[string]*model.Doctor
	prices  map[uuid.UUID]map[string]int64
}

func newStubDoctorRepo(names ...string) *stubDoctorRepo {
	r := &stubDoctorRepo{
		doctors: make(map[string]*model.Doctor),
		prices:  make(map[uuid.UUID]map[string]int64),
	}
	for _, name := range names {
		r.doctors[name] = &model.Doctor{ID: uuid.New(), Name: name}
	}
	return r
}

func (r *stubDoctorRepo) Create(_ context.Context, d *model.Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.doctors[d.Name] = d
	return nil
}

func (r *stubDoctorRepo) Save(_ context.Context, d *model.Doctor) error {
	r.doctors[d.Name] = d
	return nil
}

func (r *stubDoctorRepo) FindByName(_ context.Context, name string) (*model.Doctor, error) {
	d, ok := r.doctors[name]
	if !ok {
		return nil, errStubNotFound
	}
	return d, nil
}

func (r *stubDoctorRepo) FindAll(_ context.Context) ([]model.Doctor, error) {
	out := make([]model.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDoctorRepo) DeleteByName(_ context.Context, name string) error {
	if d, ok := r.doctors[name]; ok {
		delete(r.prices, d.ID)
	}
	delete(r.doctors, name)
	return nil
}

func (r *stubDoctorRepo) FindPrice(_ context.Context, doctorID uuid.UUID, medicineName string) (*model.DoctorPrice, error) {
	price, ok := r.prices[doctorID][medicineName]
	if !ok {
		return nil, errStubNotFound
	}
	return &model.DoctorPrice{DoctorID: doctorID, MedicineName: medicineName, Price: price}, nil
}

func (r *stubDoctorRepo) UpsertPrice(_ context.Context, p *model.DoctorPrice) error {
	if r.prices[p.DoctorID] == nil {
		r.prices[p.DoctorID] = make(map[string]int64)
	}
	r.prices[p.DoctorID][p.MedicineName] = p.Price
	return nil
}

func (r *stubDoctorRepo) DeletePrice(_ context.Context, doctorID uuid.UUID, medicineName string) error {
	delete(r.prices[doctorID], medicineName)
	return nil
}

func (r *stubDoctorRepo) ListPrices(_ context.Context, doctorID uuid.UUID) ([]model.DoctorPrice, error) {
	out := make([]model.DoctorPrice, 0, len(r.prices[doctorID]))
	for name, price := range r.prices[doctorID] {
		out = append(out, model.DoctorPrice{DoctorID: doctorID, MedicineName: name, Price: price})
	}
	return out, nil
}

var _ repository.DoctorRepository = (*stubDoctorRepo)(nil)

type stubInvoiceRepo struct {
	invoices map[int64]*model.Invoice
	seq      int64
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[int64]*model.Invoice)}
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

func (r *stubInvoiceRepo) Create(_ context.Context, _ *gorm.DB, inv *model.Invoice) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now()
	}
	r.invoices[inv.InvoiceNumber] = inv
	return nil
}

func (r *stubInvoiceRepo) NextInvoiceNumber(_ context.Context, _ *gorm.DB) (int64, error) {
	r.seq++
	return r.seq, nil
}

func (r *stubInvoiceRepo) FindByNumber(_ context.Context, number int64) (*model.Invoice, error) {
	inv, ok := r.invoices[number]
	if !ok {
		return nil, errStubNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) FindAll(_ context.Context) ([]model.Invoice, error) {
	return r.findWhere(func(*model.Invoice) bool { return true }), nil
}

func (r *stubInvoiceRepo) FindByDoctor(_ context.Context, doctorName string) ([]model.Invoice, error) {
	return r.findWhere(func(inv *model.Invoice) bool { return inv.DoctorName == doctorName }), nil
}

func (r *stubInvoiceRepo) FindSince(_ context.Context, since time.Time) ([]model.Invoice, error) {
	return r.findWhere(func(inv *model.Invoice) bool {
		return since.IsZero() || !inv.CreatedAt.Before(since)
	}), nil
}

func (r *stubInvoiceRepo) findWhere(keep func(*model.Invoice) bool) []model.Invoice {
	numbers := make([]int64, 0, len(r.invoices))
	for n := range r.invoices {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool { return numbers[i] < numbers[j] })
	var out []model.Invoice
	for _, n := range numbers {
		if keep(r.invoices[n]) {
			out = append(out, *r.invoices[n])
		}
	}
	return out
}

func (r *stubInvoiceRepo) DeleteByNumber(_ context.Context, _ *gorm.DB, number int64) error {
	if _, ok := r.invoices[number]; !ok {
		return errStubNotFound
	}
	delete(r.invoices, number)
	return nil
}

func (r *stubInvoiceRepo) ApplyPaymentTx(_ *gorm.DB, number int64, amount int64) (int64, error) {
	inv, ok := r.invoices[number]
	if !ok || inv.AmountDue < amount {
		return 0, nil
	}
	inv.AmountPaid += amount
	inv.AmountDue -= amount
	return 1, nil
}

func (r *stubInvoiceRepo) TotalBilled(_ context.Context, medicineName string) (int64, error) {
	var total int64
	for _, inv := range r.invoices {
		for _, item := range inv.Items {
			if item.MedicineName == medicineName {
				total += item.Quantity
			}
		}
	}
	return total, nil
}

func (r *stubInvoiceRepo) TotalBilledByMedicine(_ context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, inv := range r.invoices {
		for _, item := range inv.Items {
			out[item.MedicineName] += item.Quantity
		}
	}
	return out, nil
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

type stubPaymentRepo struct {
	records []model.PaymentRecord
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, rec *model.PaymentRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubPaymentRepo) ListByInvoice(_ context.Context, invoiceNumber int64) ([]model.PaymentRecord, error) {
	var out []model.PaymentRecord
	for _, rec := range r.records {
		if rec.InvoiceNumber == invoiceNumber {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListAll(_ context.Context) ([]model.PaymentRecord, error) {
	return append([]model.PaymentRecord(nil), r.records...), nil
}

func (r *stubPaymentRepo) DeleteByInvoiceTx(_ *gorm.DB, invoiceNumber int64) error {
	kept := r.records[:0]
	for _, rec := range r.records {
		if rec.InvoiceNumber != invoiceNumber {
			kept = append(kept, rec)
		}
	}
	r.records = kept
	return nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

type stubPriceChangeRepo struct {
	changes []model.PriceChange
}

func (r *stubPriceChangeRepo) Create(_ context.Context, pc *model.PriceChange) error {
	if pc.CreatedAt.IsZero() {
		pc.CreatedAt = time.Now()
	}
	r.changes = append(r.changes, *pc)
	return nil
}

func (r *stubPriceChangeRepo) ListByDoctor(_ context.Context, doctorName string, page, limit int) ([]model.PriceChange, int64, error) {
	var matched []model.PriceChange
	for _, pc := range r.changes {
		if pc.DoctorName == doctorName {
			matched = append(matched, pc)
		}
	}
	total := int64(len(matched))
	// newest first, as the real repository orders by created_at DESC
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

var _ repository.PriceChangeRepository = (*stubPriceChangeRepo)(nil)

type stubSettingsRepo struct {
	settings *model.FirmSettings
}

func (r *stubSettingsRepo) Get(_ context.Context) (*model.FirmSettings, error) {
	return r.settings, nil
}

func (r *stubSettingsRepo) Upsert(_ context.Context, s *model.FirmSettings) error {
	r.settings = s
	return nil
}

var _ repository.SettingsRepository = (*stubSettingsRepo)(nil)
