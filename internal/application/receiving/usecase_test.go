package receiving_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
	"github.com/jhoicas/Inventario-patio/internal/domain"
	"github.com/jhoicas/Inventario-patio/internal/domain/entity"
	"github.com/jhoicas/Inventario-patio/internal/domain/repository"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeQRRepo struct {
	byValue map[string]*entity.QRCode
	// duplicateOnCreate simula otro dispositivo ganando la carrera: Create
	// devuelve ErrDuplicate y el código "ajeno" aparece en byValue.
	duplicateOnCreate *entity.QRCode
}

func newFakeQRRepo() *fakeQRRepo {
	return &fakeQRRepo{byValue: make(map[string]*entity.QRCode)}
}

func (r *fakeQRRepo) GetByID(id string) (*entity.QRCode, error) {
	for _, qr := range r.byValue {
		if qr.ID == id {
			return qr, nil
		}
	}
	return nil, nil
}

func (r *fakeQRRepo) GetByValue(codeValue string) (*entity.QRCode, error) {
	return r.byValue[codeValue], nil
}

func (r *fakeQRRepo) Create(code *entity.QRCode) error {
	if r.duplicateOnCreate != nil {
		r.byValue[r.duplicateOnCreate.CodeValue] = r.duplicateOnCreate
		return domain.ErrDuplicate
	}
	r.byValue[code.CodeValue] = code
	return nil
}

func (r *fakeQRRepo) LinkEntity(id, entityID string) error {
	for _, qr := range r.byValue {
		if qr.ID == id {
			qr.EntityID = &entityID
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeQRRepo) List() ([]*entity.QRCode, error) { return nil, nil }

type fakeReceivingRepo struct {
	records []*entity.ReceivingRecord
	photos  []*entity.InspectionPhoto
}

func (r *fakeReceivingRepo) Create(record *entity.ReceivingRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *fakeReceivingRepo) GetByID(id string) (*entity.ReceivingRecord, error) {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, nil
}

func (r *fakeReceivingRepo) AddPhoto(photo *entity.InspectionPhoto) error {
	r.photos = append(r.photos, photo)
	return nil
}

func (r *fakeReceivingRepo) ListExceptions(includeResolved bool) ([]*entity.ExceptionView, error) {
	var list []*entity.ExceptionView
	for _, rec := range r.records {
		if !rec.HasException {
			continue
		}
		if rec.ExceptionResolved && !includeResolved {
			continue
		}
		list = append(list, &entity.ExceptionView{ReceivingRecord: *rec})
	}
	return list, nil
}

func (r *fakeReceivingRepo) ResolveException(id, resolution string) (bool, error) {
	for _, rec := range r.records {
		if rec.ID == id && rec.HasException {
			rec.ExceptionResolved = true
			rec.ExceptionResolution = &resolution
			return true, nil
		}
	}
	return false, nil
}

type fakeMaterialRepo struct {
	created []*entity.Material
}

func (r *fakeMaterialRepo) GetByID(string) (*entity.Material, error)      { return nil, nil }
func (r *fakeMaterialRepo) GetForUpdate(string) (*entity.Material, error) { return nil, nil }
func (r *fakeMaterialRepo) Create(m *entity.Material) error {
	r.created = append(r.created, m)
	return nil
}
func (r *fakeMaterialRepo) UpdateLocation(string, string) error { return nil }
func (r *fakeMaterialRepo) UpdateQuantity(string, decimal.Decimal, string, decimal.Decimal) error {
	return nil
}
func (r *fakeMaterialRepo) List(repository.MaterialFilter) ([]*entity.MaterialView, error) {
	return nil, nil
}
func (r *fakeMaterialRepo) GetViewByID(string) (*entity.MaterialView, error) { return nil, nil }
func (r *fakeMaterialRepo) GetViewByReceivingRecord(string) (*entity.MaterialView, error) {
	return nil, nil
}

type fakeAuditRepo struct{ entries []*entity.AuditEntry }

func (r *fakeAuditRepo) Insert(e *entity.AuditEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeAuditRepo) List(int) ([]*entity.AuditEntry, error) { return r.entries, nil }

type fakeUploader struct {
	uploaded []string
	fail     bool
}

func (u *fakeUploader) Upload(ctx context.Context, data []byte, objectKey string) (string, error) {
	if u.fail {
		return "", errors.New("bucket inaccesible")
	}
	u.uploaded = append(u.uploaded, objectKey)
	return "https://bucket/" + objectKey, nil
}

type fakeTxRunner struct {
	qrCodes   *fakeQRRepo
	records   *fakeReceivingRepo
	materials *fakeMaterialRepo
}

func (r *fakeTxRunner) RunReceiving(ctx context.Context, fn func(
	repository.QRCodeRepository,
	repository.ReceivingRepository,
	repository.MaterialRepository,
) error) error {
	return fn(r.qrCodes, r.records, r.materials)
}

type fixture struct {
	uc        *receiving.UseCase
	qrCodes   *fakeQRRepo
	records   *fakeReceivingRepo
	materials *fakeMaterialRepo
	uploader  *fakeUploader
	audit     *fakeAuditRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		qrCodes:   newFakeQRRepo(),
		records:   &fakeReceivingRepo{},
		materials: &fakeMaterialRepo{},
		uploader:  &fakeUploader{},
		audit:     &fakeAuditRepo{},
	}
	runner := &fakeTxRunner{qrCodes: f.qrCodes, records: f.records, materials: f.materials}
	f.uc = receiving.NewUseCase(
		runner, f.qrCodes, f.records, f.audit, f.uploader,
		logger.New(logger.Config{Env: "production", Level: "error"}),
	)
	return f
}

func submitInput(status string) receiving.SubmitInput {
	return receiving.SubmitInput{
		ReceivingPayload: entity.ReceivingPayload{
			QRCodeValue:  "QR-AA11BB22",
			Status:       status,
			MaterialType: "beam",
			Qty:          decimal.NewFromInt(25),
			Condition:    entity.ConditionGood,
			CreatedBy:    "operador",
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Submit
// ──────────────────────────────────────────────────────────────────────────────

// Una recepción aceptada crea el registro, vincula el QR y crea el material
// con CurrentQuantity igual a la cantidad recibida.
func TestSubmit_AceptadaCreaMaterial(t *testing.T) {
	f := newFixture(t)

	recordID, err := f.uc.Submit(context.Background(), submitInput(entity.ReceivingStatusAccepted))
	require.NoError(t, err)
	require.NotEmpty(t, recordID)

	require.Len(t, f.records.records, 1)
	assert.Equal(t, recordID, f.records.records[0].ID)

	qr := f.qrCodes.byValue["QR-AA11BB22"]
	require.NotNil(t, qr)
	require.NotNil(t, qr.EntityID)
	assert.Equal(t, recordID, *qr.EntityID)

	require.Len(t, f.materials.created, 1)
	m := f.materials.created[0]
	assert.True(t, m.CurrentQuantity.Equal(decimal.NewFromInt(25)))
	assert.True(t, m.Qty.Equal(m.CurrentQuantity))
	assert.Equal(t, entity.MaterialStatusInYard, m.Status)
	assert.Equal(t, recordID, m.ReceivingRecordID)
}

// Una recepción rechazada registra la llegada pero no crea material.
func TestSubmit_RechazadaNoCreaMaterial(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Submit(context.Background(), submitInput(entity.ReceivingStatusRejected))
	require.NoError(t, err)

	assert.Len(t, f.records.records, 1)
	assert.Empty(t, f.materials.created)
}

// Si otro dispositivo creó el mismo código primero, se re-consulta y se usa
// el existente (first-writer-wins), sin fallar la recepción.
func TestSubmit_CodigoDuplicadoReconsulta(t *testing.T) {
	f := newFixture(t)
	ajeno := &entity.QRCode{ID: "qr-ajeno", CodeValue: "QR-AA11BB22", EntityType: entity.EntityTypeItem}
	f.qrCodes.duplicateOnCreate = ajeno

	recordID, err := f.uc.Submit(context.Background(), submitInput(entity.ReceivingStatusAccepted))
	require.NoError(t, err)

	require.Len(t, f.records.records, 1)
	assert.Equal(t, "qr-ajeno", f.records.records[0].QRCodeID)
	require.NotNil(t, ajeno.EntityID)
	assert.Equal(t, recordID, *ajeno.EntityID)
}

// Un fallo al subir fotos no revierte la recepción: el registro y el
// material quedan persistidos.
func TestSubmit_FalloDeFotosNoEsFatal(t *testing.T) {
	f := newFixture(t)
	f.uploader.fail = true

	in := submitInput(entity.ReceivingStatusAccepted)
	in.Photos = []receiving.PhotoInput{{Data: []byte{0xFF, 0xD8}, PhotoType: entity.PhotoTypeGeneral}}

	_, err := f.uc.Submit(context.Background(), in)
	require.NoError(t, err)

	assert.Len(t, f.records.records, 1)
	assert.Len(t, f.materials.created, 1)
	assert.Empty(t, f.records.photos)
}

// Con la subida sana, cada foto queda referenciada al registro.
func TestSubmit_FotosReferenciadas(t *testing.T) {
	f := newFixture(t)

	in := submitInput(entity.ReceivingStatusAccepted)
	in.Photos = []receiving.PhotoInput{
		{Data: []byte{0xFF, 0xD8}, PhotoType: entity.PhotoTypeGeneral},
		{Data: []byte{0xFF, 0xD8}, PhotoType: entity.PhotoTypeDamage},
	}

	recordID, err := f.uc.Submit(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, f.records.photos, 2)
	assert.Equal(t, recordID, f.records.photos[0].ReceivingRecordID)
	assert.Len(t, f.uploader.uploaded, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Excepciones
// ──────────────────────────────────────────────────────────────────────────────

func exceptionInput() receiving.SubmitInput {
	in := submitInput(entity.ReceivingStatusPending)
	in.HasException = true
	excType := entity.ExceptionWrongCount
	in.ExceptionType = &excType
	return in
}

// Resolver una excepción la marca como cerrada con la disposición tomada y
// deja rastro en auditoría.
func TestResolveException_CierraYAudita(t *testing.T) {
	f := newFixture(t)
	recordID, err := f.uc.Submit(context.Background(), exceptionInput())
	require.NoError(t, err)

	err = f.uc.ResolveException(context.Background(), recordID, entity.ResolutionHold, "supervisor")
	require.NoError(t, err)

	rec := f.records.records[0]
	assert.True(t, rec.ExceptionResolved)
	require.NotNil(t, rec.ExceptionResolution)
	assert.Equal(t, entity.ResolutionHold, *rec.ExceptionResolution)

	last := f.audit.entries[len(f.audit.entries)-1]
	assert.Equal(t, "exception_resolved", last.Action)
	assert.Equal(t, recordID, last.EntityID)
	assert.Equal(t, entity.ResolutionHold, last.Details["resolution"])
}

// Solo hold y return_to_vendor son disposiciones válidas.
func TestResolveException_DisposicionInvalida(t *testing.T) {
	f := newFixture(t)
	recordID, err := f.uc.Submit(context.Background(), exceptionInput())
	require.NoError(t, err)

	err = f.uc.ResolveException(context.Background(), recordID, "scrap", "supervisor")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, f.records.records[0].ExceptionResolved)
}

func TestResolveException_RegistroInexistente(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ResolveException(context.Background(), "rec-fantasma", entity.ResolutionHold, "supervisor")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// La bandeja lista solo las abiertas salvo que se pidan también las
// resueltas.
func TestExceptions_ListaAbiertasPorDefecto(t *testing.T) {
	f := newFixture(t)
	first, err := f.uc.Submit(context.Background(), exceptionInput())
	require.NoError(t, err)
	in := exceptionInput()
	in.QRCodeValue = "QR-CC33DD44"
	_, err = f.uc.Submit(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, f.uc.ResolveException(context.Background(), first, entity.ResolutionReturnToVendor, "supervisor"))

	open, err := f.uc.Exceptions(context.Background(), false)
	require.NoError(t, err)
	assert.Len(t, open, 1)

	all, err := f.uc.Exceptions(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSubmit_EstadoInvalido(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Submit(context.Background(), submitInput("otro"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.records.records)
}

func TestSubmit_CamposObligatorios(t *testing.T) {
	f := newFixture(t)

	in := submitInput(entity.ReceivingStatusAccepted)
	in.QRCodeValue = ""
	_, err := f.uc.Submit(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
