package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jhoicas/Panneaux-api/internal/application/dto"
	"github.com/jhoicas/Panneaux-api/internal/domain"
	"github.com/jhoicas/Panneaux-api/internal/domain/entity"
	"github.com/jhoicas/Panneaux-api/internal/domain/lessor"
	"github.com/jhoicas/Panneaux-api/internal/domain/repository"
)

// LessorUseCase gestiona los arrendadores de la empresa.
type LessorUseCase struct {
	repo repository.LessorRepository
}

// NewLessorUseCase construye el caso de uso.
func NewLessorUseCase(repo repository.LessorRepository) *LessorUseCase {
	return &LessorUseCase{repo: repo}
}

// Create valida la variante indicada por Type y la persiste.
// Un payload incompleto o con campos de otra variante devuelve un error que envuelve
// domain.ErrInvalidInput y lessor.ErrInvalidLessor.
func (uc *LessorUseCase) Create(ctx context.Context, companyID string, in dto.CreateLessorRequest) (*dto.LessorResponse, error) {
	l, err := lessor.Decode(lessor.Kind(in.Type), in.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	payload, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("serializar arrendador: %w", err)
	}
	now := time.Now()
	row := &entity.Lessor{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Type:        string(l.Kind()),
		DisplayName: l.DisplayName(),
		Payload:     payload,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, row); err != nil {
		return nil, err
	}
	return toLessorResponse(row), nil
}

// List lista arrendadores; lessorType vacío devuelve todas las variantes.
func (uc *LessorUseCase) List(ctx context.Context, companyID, lessorType string, page dto.PageRequest) (*dto.LessorListResponse, error) {
	page = page.Normalized()
	if lessorType != "" {
		switch lessor.Kind(lessorType) {
		case lessor.KindPrivatePhysical, lessor.KindPrivateMoral, lessor.KindPublic:
		default:
			return nil, fmt.Errorf("%w: type desconocido %q", domain.ErrInvalidInput, lessorType)
		}
	}
	rows, err := uc.repo.ListByCompany(ctx, companyID, lessorType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.LessorListResponse{
		Items: lo.Map(rows, func(l *entity.Lessor, _ int) dto.LessorResponse { return *toLessorResponse(l) }),
		Page:  page.Response(0),
	}, nil
}

// Delete elimina un arrendador de la empresa.
func (uc *LessorUseCase) Delete(ctx context.Context, companyID, id string) error {
	row, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if row == nil {
		return domain.ErrNotFound
	}
	if row.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(ctx, id)
}

func toLessorResponse(l *entity.Lessor) *dto.LessorResponse {
	return &dto.LessorResponse{
		ID:          l.ID,
		Type:        l.Type,
		DisplayName: l.DisplayName,
		Data:        l.Payload,
		CreatedAt:   l.CreatedAt,
	}
}
