package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	localCache "github.com/devlog-ge/devlog-server/pkg/internal/cache"
	"github.com/devlog-ge/devlog-server/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const SessionTokenDuration = 72 * time.Hour

func IssueSessionToken(user models.Account) (string, error) {
	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.Itoa(int(user.ID)),
		"exp": time.Now().Add(SessionTokenDuration).Unix(),
	})

	return claims.SignedString([]byte(viper.GetString("secret")))
}

func ParseSessionToken(raw string) (uint, error) {
	token, err := jwt.ParseWithClaims(raw, jwt.MapClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(viper.GetString("secret")), nil
	})
	if err != nil {
		return 0, err
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(subject)
	if err != nil {
		return 0, fmt.Errorf("malformed session token subject: %v", err)
	}

	return uint(id), nil
}

func getSessionAccountCacheKey(id uint) string {
	return fmt.Sprintf("session-account#%d", id)
}

// GetSessionAccount resolves the authenticated account behind a session
// token, backed by a short-lived cache. Follow and message predicates never
// go through here; they always read the database directly.
func GetSessionAccount(id uint) (models.Account, error) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	key := getSessionAccountCacheKey(id)
	if cached, err := marshal.Get(ctx, key, new(models.Account)); err == nil {
		return *cached.(*models.Account), nil
	}

	account, err := GetAccount(id)
	if err != nil {
		return account, err
	}

	_ = marshal.Set(
		ctx,
		key,
		account,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{"session-account", fmt.Sprintf("user#%d", id)}),
	)

	return account, nil
}

func InvalidateSessionAccount(id uint) {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)

	_ = marshal.Invalidate(
		context.Background(),
		store.WithInvalidateTags([]string{fmt.Sprintf("user#%d", id)}),
	)
}
