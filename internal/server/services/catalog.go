package services

import "github.com/dmitrijs2005/docverifier/internal/server/models"

var documentTypes = []string{
	"Справка",
	"Сертификат",
	"Удостоверение",
	"Лицензия",
	"Диплом",
	"Аттестат",
}

var verificationTemplates = []models.Template{
	{
		ID:     "template1",
		Name:   "Стандартная проверка",
		Checks: []string{"validity", "issuer", "signature", "expiry"},
	},
	{
		ID:     "template2",
		Name:   "Расширенная проверка",
		Checks: []string{"validity", "issuer", "signature", "expiry", "revocation", "chain"},
	},
}

// DocumentTypes returns the document types the registry issues.
func DocumentTypes() []string {
	return append([]string(nil), documentTypes...)
}

// VerificationTemplates returns the check templates offered to verifiers.
func VerificationTemplates() []models.Template {
	res := make([]models.Template, len(verificationTemplates))
	for i, t := range verificationTemplates {
		t.Checks = append([]string(nil), t.Checks...)
		res[i] = t
	}
	return res
}
