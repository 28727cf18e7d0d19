package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters for sealing the PIN. N=2^15 keeps unlocking fast enough
// for an interactive flow while still making offline brute force expensive.
const (
	scryptN      = 1 << 15
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 32
	nonceLen     = 12
)

type sealedSecret struct {
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"ciphertext"`
}

type secretPayload struct {
	Password string `json:"password"`
}

// sealSecret encrypts the raw PIN with a key derived from the device uid
// and returns the persisted envelope form.
func sealSecret(deviceUID, pin string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	aesGCM, err := deriveCipher(deviceUID, salt)
	if err != nil {
		return "", err
	}

	plaintext, err := json.Marshal(secretPayload{Password: pin})
	if err != nil {
		return "", fmt.Errorf("marshal secret: %w", err)
	}
	defer clear(plaintext)

	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	envelope, err := json.Marshal(sealedSecret{
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	})
	if err != nil {
		return "", fmt.Errorf("marshal envelope: %w", err)
	}
	return string(envelope), nil
}

// unsealSecret decrypts a persisted envelope back into the raw PIN.
func unsealSecret(deviceUID, sealed string) (string, error) {
	var envelope sealedSecret
	if err := json.Unmarshal([]byte(sealed), &envelope); err != nil {
		return "", fmt.Errorf("unmarshal envelope: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(envelope.Salt)
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	nonce, err := base64.StdEncoding.DecodeString(envelope.Nonce)
	if err != nil {
		return "", fmt.Errorf("decode nonce: %w", err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(envelope.CipherText)
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	aesGCM, err := deriveCipher(deviceUID, salt)
	if err != nil {
		return "", err
	}

	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("unseal secret: %w", err)
	}
	defer clear(plaintext)

	var payload secretPayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return "", fmt.Errorf("unmarshal secret: %w", err)
	}
	return payload.Password, nil
}

func deriveCipher(deviceUID string, salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(deviceUID), salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return aesGCM, nil
}
