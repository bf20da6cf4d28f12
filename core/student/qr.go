package student

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// tokenPrefix tags every check-in token carried by a student's QR code.
const tokenPrefix = "STUDENT"

var ErrInvalidTokenFormat = errors.New("invalid QR code format")

// EncodeToken builds the durable check-in token encoded into a student's QR
// code: "STUDENT:<id>:<name>". The name is carried for human readability only.
func EncodeToken(id int, fullName string) string {
	return fmt.Sprintf("%s:%d:%s", tokenPrefix, id, fullName)
}

// DecodeToken parses a scanned token back into the student ID it identifies.
// The token must consist of exactly 3 colon-separated fields, start with the
// "STUDENT" tag and carry a positive integer ID. The name field is not
// re-validated against the store, so a student rename does not invalidate
// tokens already printed.
func DecodeToken(token string) (int, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != tokenPrefix {
		return 0, ErrInvalidTokenFormat
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil || id <= 0 {
		return 0, ErrInvalidTokenFormat
	}
	return id, nil
}
