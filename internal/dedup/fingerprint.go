package dedup

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/stageradar/stageradar/internal/textutil"
)

// Fingerprint produces a SHA-256 hex digest over the normalized title,
// organization, and deadline date. It detects near-identical records
// across sources without relying on URL equality.
//
// Each field is length-prefixed (4-byte big-endian) before hashing so
// freeform text cannot collide across field boundaries. Missing fields
// contribute an empty segment; the hash is computed from whatever is
// available. Returns "" when every input is empty.
func Fingerprint(title, organization string, deadline *time.Time) string {
	t := textutil.NormalizeText(title)
	o := textutil.NormalizeText(organization)
	d := ""
	if deadline != nil {
		d = deadline.UTC().Format("2006-01-02")
	}
	if t == "" && o == "" && d == "" {
		return ""
	}

	h := sha256.New()
	for _, field := range []string{t, o, d} {
		var n [4]byte
		binary.BigEndian.PutUint32(n[:], uint32(len(field)))
		h.Write(n[:])
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}
