package mceliece

import "errors"

// Public error taxonomy (§7). Internal packages expose their own narrower
// sentinels. The conversions' decrypt paths map every failure onto
// ErrInvalidCiphertext, and DecryptRaw maps goppa.ErrDecodeFailed onto it;
// KeyGen, DecryptRaw's other failures, and PRNG read failures are returned
// unchanged, as the internal package's own error.
var (
	ErrInvalidParameter  = errors.New("mceliece: invalid parameter")
	ErrInvalidKey        = errors.New("mceliece: invalid key")
	ErrInvalidCiphertext = errors.New("mceliece: invalid ciphertext")
	ErrInputTooLong      = errors.New("mceliece: input too long")
	ErrIoError           = errors.New("mceliece: serialization read/write failure")
	ErrUninitialized     = errors.New("mceliece: operation invoked before initialization")
	ErrKeyAlreadyUsed    = errors.New("mceliece: one-time signature key pair already used")
)
