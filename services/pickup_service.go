package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"recycle-rewards-system/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PhotoStore persists proof-of-pickup photos and returns their public URL.
type PhotoStore interface {
	UploadPickupPhoto(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type PickupService struct {
	DB     *gorm.DB
	Photos PhotoStore // optional
}

func NewPickupService(db *gorm.DB, photos PhotoStore) *PickupService {
	return &PickupService{DB: db, Photos: photos}
}

// Quantity is a raw quantity as submitted by a client. JSON numbers and
// strings are both accepted; coercion happens later via ParseQuantity.
type Quantity string

func (q *Quantity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = Quantity(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// unparseable quantities degrade to 0 rather than failing the body
		*q = ""
		return nil
	}
	*q = Quantity(n.String())
	return nil
}

// Int coerces the raw value with ParseQuantity.
func (q Quantity) Int() int { return ParseQuantity(string(q)) }

// MaxPickupQuantity bounds a single pickup so its score stays well inside int64.
const MaxPickupQuantity = 10000

type CreatePickupInput struct {
	Category   string `validate:"required,max=64"`
	Quantity   int    `validate:"min=1,max=10000"`
	Address    string `validate:"max=500"`
	PickupDate string `validate:"omitempty,datetime=2006-01-02"`
	PickupTime string `validate:"omitempty,datetime=15:04"`
}

// PhotoUpload is an optional proof photo attached to a completion.
type PhotoUpload struct {
	Body        io.Reader
	ContentType string
	Ext         string
}

// CompletePickupResult reports the points a completion credited.
type CompletePickupResult struct {
	Pickup        models.Pickup `json:"pickup"`
	PointsAwarded int64         `json:"points_awarded"`
}

// CreatePickup files a new request and bumps the user's tree level by one in
// the same transaction. Points wait until completion; progress does not.
//
// Quantity must be between 1 and MaxPickupQuantity. Unlike Score, which
// degrades an unusable quantity to 0, CreatePickup rejects it with
// ErrInvalidInput so no pickup is stored that could only ever score 0.
func (s *PickupService) CreatePickup(ctx context.Context, actor Actor, in CreatePickupInput) (*models.Pickup, error) {
	userID, err := actor.UserID()
	if err != nil {
		return nil, err
	}

	in.Category = strings.TrimSpace(in.Category)
	in.Address = strings.TrimSpace(in.Address)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var pickup models.Pickup
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("id = ?", userID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %s: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("load user: %w", err)
		}

		address := in.Address
		if address == "" {
			address = user.Address
		}
		if address == "" {
			return fmt.Errorf("%w: address is required", ErrInvalidInput)
		}

		pickup = models.Pickup{
			UserID:     userID,
			Category:   in.Category,
			Quantity:   in.Quantity,
			Address:    address,
			PickupDate: in.PickupDate,
			PickupTime: in.PickupTime,
			Status:     models.PickupStatusRequested,
		}
		if err := tx.Create(&pickup).Error; err != nil {
			return fmt.Errorf("insert pickup: %w", err)
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("tree_level", gorm.Expr("tree_level + 1")).Error; err != nil {
			return fmt.Errorf("bump tree level: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pickupTransitions.WithLabelValues(string(models.PickupStatusRequested)).Inc()
	zap.L().Info("[PICKUP] requested",
		zap.String("pickup_id", pickup.ID),
		zap.String("user_id", userID),
		zap.String("category", pickup.Category),
		zap.Int("quantity", pickup.Quantity),
	)
	return &pickup, nil
}

// ClaimPickup assigns a requested pickup to the rider. The conditional update
// on status='requested' is the only guard: of two concurrent claims exactly
// one changes a row.
func (s *PickupService) ClaimPickup(ctx context.Context, actor Actor, pickupID string) (*models.Pickup, error) {
	riderID, err := actor.RiderID()
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(pickupID); err != nil {
		return nil, fmt.Errorf("pickup %q: %w", pickupID, ErrNotFound)
	}

	var pickup models.Pickup
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Where("id = ?", riderID).First(&models.Rider{}).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("rider %s: %w", riderID, ErrNotFound)
			}
			return fmt.Errorf("load rider: %w", err)
		}

		now := time.Now().UTC()
		res := tx.Model(&models.Pickup{}).
			Where("id = ? AND status = ?", pickupID, models.PickupStatusRequested).
			Updates(map[string]any{
				"status":      models.PickupStatusAssigned,
				"rider_id":    riderID,
				"assigned_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("claim pickup: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			if err := tx.Select("id").Where("id = ?", pickupID).First(&models.Pickup{}).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("pickup %s: %w", pickupID, ErrNotFound)
				}
				return fmt.Errorf("load pickup: %w", err)
			}
			return ErrAlreadyClaimed
		}

		return tx.Where("id = ?", pickupID).First(&pickup).Error
	})
	if err != nil {
		return nil, err
	}

	pickupTransitions.WithLabelValues(string(models.PickupStatusAssigned)).Inc()
	zap.L().Info("[PICKUP] claimed", zap.String("pickup_id", pickupID), zap.String("rider_id", riderID))
	return &pickup, nil
}

// CompletePickup finishes an assigned pickup, scores it and credits the owner.
// The status change is conditional on status='assigned' AND rider_id=<caller>,
// so the credit can fire at most once per pickup.
func (s *PickupService) CompletePickup(ctx context.Context, actor Actor, pickupID string, photo *PhotoUpload) (*CompletePickupResult, error) {
	riderID, err := actor.RiderID()
	if err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(pickupID); err != nil {
		return nil, fmt.Errorf("pickup %q: %w", pickupID, ErrNotFound)
	}

	var photoURL string
	if photo != nil && s.Photos != nil {
		// Advisory check so nobody but the assigned rider can write to the bucket;
		// the conditional update below is still the real guard.
		existing, err := s.getPickup(ctx, pickupID)
		if err != nil {
			return nil, err
		}
		if err := completionOutcome(existing, riderID); err != nil {
			return nil, err
		}

		key := fmt.Sprintf("pickups/%s/%s%s", pickupID, uuid.NewString(), photo.Ext)
		photoURL, err = s.Photos.UploadPickupPhoto(ctx, key, photo.Body, photo.ContentType)
		if err != nil {
			return nil, fmt.Errorf("upload proof photo: %w", err)
		}
	}

	var result CompletePickupResult
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Pickup
		if err := tx.Where("id = ?", pickupID).First(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("pickup %s: %w", pickupID, ErrNotFound)
			}
			return fmt.Errorf("load pickup: %w", err)
		}

		points := Score(p.Category, p.Quantity)
		now := time.Now().UTC()
		updates := map[string]any{
			"status":         models.PickupStatusCompleted,
			"points_awarded": points,
			"completed_at":   now,
		}
		if photoURL != "" {
			updates["photo_url"] = photoURL
		}

		res := tx.Model(&models.Pickup{}).
			Where("id = ? AND status = ? AND rider_id = ?", pickupID, models.PickupStatusAssigned, riderID).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("complete pickup: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			if err := completionOutcome(&p, riderID); err != nil {
				return err
			}
			// the row changed between our read and the update
			return ErrNotOwnedByRider
		}

		if _, err := creditPoints(tx, p.UserID, models.PointsSourcePickup, p.ID, points); err != nil {
			return err
		}

		if err := tx.Where("id = ?", pickupID).First(&result.Pickup).Error; err != nil {
			return fmt.Errorf("reload pickup: %w", err)
		}
		result.PointsAwarded = points
		return nil
	})
	if err != nil {
		return nil, err
	}

	pickupTransitions.WithLabelValues(string(models.PickupStatusCompleted)).Inc()
	pointsAwarded.WithLabelValues(string(models.PointsSourcePickup)).Add(float64(result.PointsAwarded))
	zap.L().Info("[PICKUP] ✅ completed",
		zap.String("pickup_id", pickupID),
		zap.String("rider_id", riderID),
		zap.String("user_id", result.Pickup.UserID),
		zap.Int64("points", result.PointsAwarded),
	)
	return &result, nil
}

// completionOutcome explains why riderID may not complete p, or returns nil
// when it may.
func completionOutcome(p *models.Pickup, riderID string) error {
	owned := p.RiderID != nil && *p.RiderID == riderID
	switch {
	case owned && p.Status == models.PickupStatusCompleted:
		return ErrAlreadyCompleted
	case !owned || p.Status != models.PickupStatusAssigned:
		return ErrNotOwnedByRider
	default:
		return nil
	}
}

func (s *PickupService) getPickup(ctx context.Context, pickupID string) (*models.Pickup, error) {
	var p models.Pickup
	if err := s.DB.WithContext(ctx).Where("id = ?", pickupID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("pickup %s: %w", pickupID, ErrNotFound)
		}
		return nil, fmt.Errorf("load pickup: %w", err)
	}
	return &p, nil
}

// ListUserPickups returns the user's pickups, newest first.
func (s *PickupService) ListUserPickups(ctx context.Context, actor Actor) ([]models.Pickup, error) {
	userID, err := actor.UserID()
	if err != nil {
		return nil, err
	}
	var pickups []models.Pickup
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&pickups).Error; err != nil {
		return nil, fmt.Errorf("list user pickups: %w", err)
	}
	return pickups, nil
}

// ListOpenPickups returns unclaimed pickups, oldest first.
func (s *PickupService) ListOpenPickups(ctx context.Context, actor Actor) ([]models.Pickup, error) {
	if _, err := actor.RiderID(); err != nil {
		return nil, err
	}
	var pickups []models.Pickup
	if err := s.DB.WithContext(ctx).
		Where("status = ?", models.PickupStatusRequested).
		Order("created_at ASC").
		Find(&pickups).Error; err != nil {
		return nil, fmt.Errorf("list open pickups: %w", err)
	}
	return pickups, nil
}

// ListRiderPickups returns pickups assigned to or completed by the rider.
func (s *PickupService) ListRiderPickups(ctx context.Context, actor Actor) ([]models.Pickup, error) {
	riderID, err := actor.RiderID()
	if err != nil {
		return nil, err
	}
	var pickups []models.Pickup
	if err := s.DB.WithContext(ctx).
		Where("rider_id = ?", riderID).
		Order("created_at DESC").
		Find(&pickups).Error; err != nil {
		return nil, fmt.Errorf("list rider pickups: %w", err)
	}
	return pickups, nil
}
