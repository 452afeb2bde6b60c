package mysql

import (
	"context"
	"strings"

	"restaurant/domain/shared"
	"restaurant/domain/user"
	"restaurant/infrastructure/persistence/mysql/po"
	"restaurant/infrastructure/persistence/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	conn
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{conn: conn{db: db}}
}

var userSortColumns = map[user.SortField]string{
	user.SortByName:      "name",
	user.SortByEmail:     "email",
	user.SortByCreatedAt: "created_at",
}

func (r *UserRepository) Save(ctx context.Context, u *user.User) error {
	return r.inTx(ctx, func(tx *gorm.DB) error {
		return r.saveWithTx(tx, u)
	})
}

func (r *UserRepository) saveWithTx(tx *gorm.DB, u *user.User) error {
	userPO := po.FromUserDomain(u)

	if u.IsNew() {
		userPO.Version = 1
		if err := tx.Create(userPO).Error; err != nil {
			if isDuplicateKeyError(err) {
				return duplicateUserError(err, userPO)
			}
			return err
		}
		u.IncrementVersionForSave()
		return nil
	}

	expectedVersion := u.Version()

	// 严格乐观锁：必须使用聚合当前版本作为更新条件，避免静默覆盖并发写入。
	result := tx.Model(&po.UserPO{}).
		Where("id = ? AND version = ?", u.ID(), expectedVersion).
		Updates(map[string]any{
			"name":           userPO.Name,
			"email":          userPO.Email,
			"phone":          userPO.Phone,
			"password_hash":  userPO.PasswordHash,
			"image_url":      userPO.ImageURL,
			"role":           userPO.Role,
			"email_verified": userPO.EmailVerified,
			"version":        expectedVersion + 1,
			"updated_at":     userPO.UpdatedAt,
		})

	if result.Error != nil {
		if isDuplicateKeyError(result.Error) {
			return duplicateUserError(result.Error, userPO)
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&po.UserPO{}).Where("id = ?", u.ID()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return user.NewUserNotFoundError(u.ID())
		}
		return user.NewConcurrentModificationError(u.ID())
	}

	u.IncrementVersionForSave()
	return nil
}

// duplicateUserError 根据冲突的索引名区分邮箱和手机号
func duplicateUserError(err error, userPO *po.UserPO) error {
	if strings.Contains(err.Error(), "phone") {
		return user.NewPhoneAlreadyExistsError(userPO.Phone)
	}
	return user.NewEmailAlreadyExistsError(userPO.Email)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var userPO po.UserPO
	result := r.getDB(ctx).First(&userPO, "id = ?", id)
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, user.NewUserNotFoundError(id)
		}
		return nil, result.Error
	}

	return userPO.ToDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, "email = ?", strings.ToLower(email))
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*user.User, error) {
	return r.findOne(ctx, "phone = ?", phone)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var userPO po.UserPO
	result := r.getDB(ctx).Where(query, arg).First(&userPO)
	if result.Error != nil {
		if isNotFound(result.Error) {
			return nil, nil
		}
		return nil, result.Error
	}
	return userPO.ToDomain(), nil
}

func (r *UserRepository) List(ctx context.Context, criteria user.ListCriteria) ([]*user.User, int64, error) {
	query, err := specification.Apply(r.getDB(ctx).Model(&po.UserPO{}), criteria.Spec, userRule)
	if err != nil {
		return nil, 0, err
	}

	column, ok := userSortColumns[criteria.SortBy]
	if !ok {
		column = "created_at"
	}
	rows, total, err := paginate[po.UserPO](query, criteria.Page, orderBy(column, criteria.SortOrder))
	if err != nil {
		return nil, 0, err
	}

	users := make([]*user.User, len(rows))
	for i := range rows {
		users[i] = rows[i].ToDomain()
	}
	return users, total, nil
}

func (r *UserRepository) Remove(ctx context.Context, id string) error {
	result := r.getDB(ctx).Delete(&po.UserPO{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.NewUserNotFoundError(id)
	}
	return nil
}

func userRule(spec shared.Specification[*user.User]) (clause.Expression, bool) {
	switch s := spec.(type) {
	case user.ByEmailSpecification:
		return clause.Eq{Column: clause.Column{Name: "email"}, Value: s.Email}, true
	case user.ByRoleSpecification:
		return clause.Eq{Column: clause.Column{Name: "role"}, Value: string(s.Role)}, true
	case user.SearchSpecification:
		like := "%" + strings.ToLower(s.Term) + "%"
		return clause.Or(
			clause.Like{Column: clause.Column{Name: "name"}, Value: like},
			clause.Like{Column: clause.Column{Name: "email"}, Value: like},
		), true
	}
	return nil, false
}

var _ user.Repository = (*UserRepository)(nil)
