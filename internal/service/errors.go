package service

import "errors"

// Domain errors. Handlers map these onto the HTTP taxonomy (conflict,
// not-found, validation) with errors.Is; the messages themselves are the
// user-facing Indonesian strings.
var (
	ErrInvalidCredentials = errors.New("email atau password salah")

	ErrUserNotFound   = errors.New("user tidak ditemukan")
	ErrDuplicateEmail = errors.New("email sudah terdaftar")
	ErrInvalidRole    = errors.New("role tidak dikenali")

	ErrSantriNotFound       = errors.New("santri tidak ditemukan")
	ErrDuplicateNIS         = errors.New("NIS sudah terdaftar")
	ErrEmailPasswordMissing = errors.New("email dan password wajib diisi jika userId kosong")
	ErrSantriHasTransaksi   = errors.New("santri masih memiliki transaksi, hapus ditolak")

	ErrTransaksiNotFound = errors.New("transaksi tidak ditemukan")
	ErrInvalidJenis      = errors.New("jenis transaksi tidak dikenali")
	ErrInvalidStatus     = errors.New("status transaksi tidak dikenali")
	ErrKwitansiNotPaid   = errors.New("kwitansi hanya tersedia untuk transaksi LUNAS")
)
