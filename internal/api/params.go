package api

import (
	"fmt"
	"strconv"
	"strings"

	"gymwell/gym-app/internal/apperror"

	"github.com/gin-gonic/gin"
)

// flexID is an identity or exercise id that clients may send either as a
// JSON number or as a numeric string.
type flexID int64

func (id *flexID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(strings.Trim(string(b), `"`))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("%s is not a valid numeric id", string(b))
	}
	*id = flexID(n)
	return nil
}

func (id *flexID) Int64Ptr() *int64 {
	if id == nil {
		return nil
	}
	v := int64(*id)
	return &v
}

// queryInt64 parses an optional numeric query parameter.
func queryInt64(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperror.Validation("%s must be a number", name)
	}
	return &v, nil
}

// pathInt64 parses a numeric path parameter.
func pathInt64(c *gin.Context, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperror.Validation("%s must be a number", name)
	}
	return v, nil
}
