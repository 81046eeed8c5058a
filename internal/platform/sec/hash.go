// Copyright (c) 2026 Taakbeheer. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/oops"
	"golang.org/x/crypto/argon2"
)

// # Password Hashing

const (
	argonPrefix        = "$argon2id$"
	defaultSaltLength  = 16
	maxRecordTimeCost  = 64
	maxRecordMemoryKiB = 1 << 18
	maxRecordKeyLength = 1024
)

// ErrEmptyPassword is returned when attempting to hash an empty password.
var ErrEmptyPassword = errors.New("sec: password cannot be empty")

// HashParams are the argon2id cost parameters.
//
// MemoryCost is expressed in KiB, as the argon2 package expects.
type HashParams struct {
	KeyLength   uint32
	TimeCost    uint32
	MemoryCost  uint32
	Parallelism uint8
	SaltLength  uint32
}

// PasswordHasher derives and checks password records using argon2id.
//
// Records use the PHC string format:
//
//	$argon2id$v=19$m=131072,t=6,p=4$<salt>$<key>
//
// The parameters are stored in every record, so changing the configured cost
// never invalidates existing accounts. See [PasswordHasher.NeedsRehash].
type PasswordHasher struct {
	params HashParams
}

// NewPasswordHasher validates params and returns a hasher bound to them.
func NewPasswordHasher(params HashParams) (*PasswordHasher, error) {
	if params.SaltLength == 0 {
		params.SaltLength = defaultSaltLength
	}
	if params.Parallelism == 0 {
		params.Parallelism = 1
	}
	if params.KeyLength < 16 || params.TimeCost == 0 || params.TimeCost > maxRecordTimeCost ||
		params.MemoryCost < 8*uint32(params.Parallelism) || params.MemoryCost > maxRecordMemoryKiB {
		return nil, fmt.Errorf("sec: invalid argon2 parameters %+v", params)
	}
	return &PasswordHasher{params: params}, nil
}

// Hash produces a new salted record for plaintext.
func (hasher *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}

	salt := make([]byte, hasher.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", oops.Code("PASSWORD_SALT_FAILED").Wrap(err)
	}

	key := argon2.IDKey([]byte(plaintext), salt,
		hasher.params.TimeCost, hasher.params.MemoryCost, hasher.params.Parallelism, hasher.params.KeyLength)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argonPrefix,
		argon2.Version,
		hasher.params.MemoryCost,
		hasher.params.TimeCost,
		hasher.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify reports whether plaintext matches record.
//
// The derived keys are compared in constant time. A record that cannot be
// parsed is a failed verification.
func (hasher *PasswordHasher) Verify(plaintext, record string) bool {
	decoded, ok := decodeRecord(record)
	if !ok {
		return false
	}

	computed := argon2.IDKey([]byte(plaintext), decoded.salt,
		decoded.params.TimeCost, decoded.params.MemoryCost, decoded.params.Parallelism, uint32(len(decoded.key)))

	return subtle.ConstantTimeCompare(computed, decoded.key) == 1
}

// NeedsRehash reports whether record was produced with parameters other than the configured ones.
func (hasher *PasswordHasher) NeedsRehash(record string) bool {
	decoded, ok := decodeRecord(record)
	if !ok {
		return true
	}
	return decoded.params.TimeCost != hasher.params.TimeCost ||
		decoded.params.MemoryCost != hasher.params.MemoryCost ||
		decoded.params.Parallelism != hasher.params.Parallelism ||
		uint32(len(decoded.key)) != hasher.params.KeyLength
}

type decodedRecord struct {
	params HashParams
	salt   []byte
	key    []byte
}

// decodeRecord parses a PHC argon2id string. Parameters outside sane bounds are rejected
// so a tampered record cannot make verification allocate unbounded memory.
func decodeRecord(record string) (decodedRecord, bool) {
	if !strings.HasPrefix(record, argonPrefix) {
		return decodedRecord{}, false
	}

	parts := strings.Split(record, "$")
	if len(parts) != 6 {
		return decodedRecord{}, false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return decodedRecord{}, false
	}

	var memory, timeCost, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &timeCost, &threads); err != nil {
		return decodedRecord{}, false
	}
	if threads == 0 || threads > 255 || timeCost == 0 || timeCost > maxRecordTimeCost || memory == 0 || memory > maxRecordMemoryKiB {
		return decodedRecord{}, false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return decodedRecord{}, false
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 || len(key) > maxRecordKeyLength {
		return decodedRecord{}, false
	}

	return decodedRecord{
		params: HashParams{TimeCost: timeCost, MemoryCost: memory, Parallelism: uint8(threads)},
		salt:   salt,
		key:    key,
	}, true
}
