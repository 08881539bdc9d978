package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/internal/modules/academy/dto"
	"pkfit.com.br/pkfitsystem/internal/modules/user/repository"
	"pkfit.com.br/pkfitsystem/pkg/apperror"
)

type fakeAcademyRepo struct {
	academies map[uuid.UUID]*entity.Academy
	deleted   []uuid.UUID
}

func newFakeAcademyRepo(academies ...*entity.Academy) *fakeAcademyRepo {
	repo := &fakeAcademyRepo{academies: make(map[uuid.UUID]*entity.Academy)}
	for _, a := range academies {
		repo.academies[a.ID] = a
	}
	return repo
}

func (f *fakeAcademyRepo) List(ctx context.Context) ([]*entity.Academy, error) {
	result := make([]*entity.Academy, 0, len(f.academies))
	for _, a := range f.academies {
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAcademyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Academy, error) {
	if a, ok := f.academies[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAcademyRepo) CNPJTaken(ctx context.Context, cnpj string, exclude uuid.UUID) (bool, error) {
	for _, a := range f.academies {
		if a.CNPJ == cnpj && a.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAcademyRepo) CreateWithAdmin(ctx context.Context, academy *entity.Academy, admin *entity.User) error {
	academy.ID = uuid.New()
	admin.ID = uuid.New()
	admin.AcademyID = &academy.ID
	f.academies[academy.ID] = academy
	return nil
}

func (f *fakeAcademyRepo) Update(ctx context.Context, academy *entity.Academy) error {
	f.academies[academy.ID] = academy
	return nil
}

func (f *fakeAcademyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.academies, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeUserRepo struct {
	emails map[string]uuid.UUID
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) EmailTaken(ctx context.Context, email string, exclude uuid.UUID) (bool, error) {
	id, ok := f.emails[email]
	return ok && id != exclude, nil
}

func (f *fakeUserRepo) FindInAcademy(ctx context.Context, id, academyID uuid.UUID, roles ...entity.Role) (*entity.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, filter repository.Filter) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListByAcademy(ctx context.Context, academyID uuid.UUID, filter repository.MemberFilter) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListProfessors(ctx context.Context, academyID uuid.UUID) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountByRole(ctx context.Context, academyID uuid.UUID, role entity.Role, status entity.Status) (int64, error) {
	return 0, nil
}

func (f *fakeUserRepo) RecentByAcademy(ctx context.Context, academyID uuid.UUID, limit int) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) SetPassword(ctx context.Context, id uuid.UUID, hash string) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func validInput() dto.CreateAcademyInput {
	return dto.CreateAcademyInput{
		Name:       "Academia Corpo em Forma",
		CNPJ:       "12.345.678/0001-90",
		AdminName:  "Carlos Mendes",
		AdminEmail: "carlos@corpoemforma.com.br",
		Phone:      "(11) 99999-0000",
	}
}

func TestCreateAcademyProvisionsAdmin(t *testing.T) {
	academies := newFakeAcademyRepo()
	users := &fakeUserRepo{emails: map[string]uuid.UUID{}}
	svc := NewAcademyService(academies, users)

	result, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, result.Academy.Status)
	assert.Equal(t, entity.PaymentPending, result.Academy.PaymentStatus)

	require.NotNil(t, result.Admin)
	assert.Equal(t, entity.RoleAdminAcademia, result.Admin.Role)
	assert.True(t, result.Admin.FirstAccess)
	assert.Nil(t, result.Admin.PasswordHash)
	require.NotNil(t, result.Admin.AcademyID)
	assert.Equal(t, result.Academy.ID, *result.Admin.AcademyID)
}

func TestCreateAcademyNormalizesAdminEmail(t *testing.T) {
	academies := newFakeAcademyRepo()
	users := &fakeUserRepo{emails: map[string]uuid.UUID{}}
	svc := NewAcademyService(academies, users)

	input := validInput()
	input.AdminEmail = "  Carlos@CorpoEmForma.com.br "

	result, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "carlos@corpoemforma.com.br", result.Admin.Email)
}

func TestCreateAcademyDuplicateCNPJ(t *testing.T) {
	existing := &entity.Academy{ID: uuid.New(), Name: "Academia PK Demo", CNPJ: "12.345.678/0001-90"}
	academies := newFakeAcademyRepo(existing)
	users := &fakeUserRepo{emails: map[string]uuid.UUID{}}
	svc := NewAcademyService(academies, users)

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "CNPJ")
}

func TestCreateAcademyDuplicateAdminEmail(t *testing.T) {
	academies := newFakeAcademyRepo()
	users := &fakeUserRepo{emails: map[string]uuid.UUID{
		"carlos@corpoemforma.com.br": uuid.New(),
	}}
	svc := NewAcademyService(academies, users)

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "email")
}

func TestListExposesAdminWithoutUserDump(t *testing.T) {
	academy := &entity.Academy{
		ID:   uuid.New(),
		Name: "Academia PK Demo",
		CNPJ: "12.345.678/0001-90",
		Users: []entity.User{
			{Name: "Carlos Mendes", Email: "carlos@pkdemo.com.br", Role: entity.RoleAdminAcademia},
		},
	}
	svc := NewAcademyService(newFakeAcademyRepo(academy), &fakeUserRepo{emails: map[string]uuid.UUID{}})

	result, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 1)

	require.NotNil(t, result[0].Admin)
	assert.Equal(t, "carlos@pkdemo.com.br", result[0].Admin.Email)
	assert.Nil(t, result[0].Users)
}

func TestUpdateAcademyRejectsTakenCNPJ(t *testing.T) {
	first := &entity.Academy{ID: uuid.New(), Name: "Academia Um", CNPJ: "11.111.111/0001-11"}
	second := &entity.Academy{ID: uuid.New(), Name: "Academia Dois", CNPJ: "22.222.222/0001-22"}
	svc := NewAcademyService(newFakeAcademyRepo(first, second), &fakeUserRepo{emails: map[string]uuid.UUID{}})

	taken := first.CNPJ
	_, err := svc.Update(context.Background(), second.ID, dto.UpdateAcademyInput{CNPJ: &taken})
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestUpdateAcademyKeepingOwnCNPJ(t *testing.T) {
	academy := &entity.Academy{ID: uuid.New(), Name: "Academia Um", CNPJ: "11.111.111/0001-11"}
	svc := NewAcademyService(newFakeAcademyRepo(academy), &fakeUserRepo{emails: map[string]uuid.UUID{}})

	name := "Academia Um Renomeada"
	same := academy.CNPJ
	updated, err := svc.Update(context.Background(), academy.ID, dto.UpdateAcademyInput{Name: &name, CNPJ: &same})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
}

func TestDeleteUnknownAcademy(t *testing.T) {
	svc := NewAcademyService(newFakeAcademyRepo(), &fakeUserRepo{emails: map[string]uuid.UUID{}})

	err := svc.Delete(context.Background(), uuid.New())
	require.Error(t, err)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestDeleteAcademy(t *testing.T) {
	academy := &entity.Academy{ID: uuid.New(), Name: "Academia Um", CNPJ: "11.111.111/0001-11"}
	academies := newFakeAcademyRepo(academy)
	svc := NewAcademyService(academies, &fakeUserRepo{emails: map[string]uuid.UUID{}})

	require.NoError(t, svc.Delete(context.Background(), academy.ID))
	assert.Equal(t, []uuid.UUID{academy.ID}, academies.deleted)
}
