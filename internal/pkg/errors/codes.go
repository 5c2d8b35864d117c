package errors

import (
	"fmt"
	"net/http"
)

var (
	ErrPersonNotFound = New(
		"PERSON_NOT_FOUND",
		"Kişi bulunamadı",
		http.StatusNotFound,
	)

	ErrChangeNotFound = New(
		"CHANGE_NOT_FOUND",
		"Değişiklik bulunamadı",
		http.StatusNotFound,
	)

	ErrNodeNotFound = New(
		"NODE_NOT_FOUND",
		"Kayıt bulunamadı",
		http.StatusNotFound,
	)

	ErrProvinceNotFound = New(
		"PROVINCE_NOT_FOUND",
		"İl bulunamadı",
		http.StatusNotFound,
	)

	ErrDistrictNotFound = New(
		"DISTRICT_NOT_FOUND",
		"İlçe bulunamadı",
		http.StatusNotFound,
	)

	ErrAlreadyProcessed = New(
		"ALREADY_PROCESSED",
		"Bu değişiklik zaten işlenmiş",
		http.StatusBadRequest,
	)

	ErrNameRequired = New(
		"NAME_REQUIRED",
		"İsim ve soyisim alanları zorunludur",
		http.StatusBadRequest,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Geçersiz istek parametreleri",
		http.StatusBadRequest,
	)

	// ErrSourceUnavailable marks a failed call to the external address
	// directory. It never propagates past the resolver layer.
	ErrSourceUnavailable = New(
		"SOURCE_UNAVAILABLE",
		"Adres servisi şu anda kullanılamıyor",
		http.StatusServiceUnavailable,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Veritabanı işlemi başarısız oldu",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		"UNAUTHORIZED",
		"Yetkisiz erişim",
		http.StatusUnauthorized,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Sunucu hatası oluştu",
		http.StatusInternalServerError,
	)
)

// CodeHasChildren identifies delete refusals on nodes that still have
// children; the message carries the child count.
const CodeHasChildren = "HAS_CHILDREN"

func NewHasChildren(count int) *AppError {
	e := New(
		CodeHasChildren,
		fmt.Sprintf("Bu kaydın %d alt kaydı var. Önce onları silmelisiniz.", count),
		http.StatusBadRequest,
	)
	e.Details = map[string]interface{}{"child_count": count}
	return e
}
