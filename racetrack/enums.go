package racetrack

// TestType is the kind of run a test set represents.
type TestType string

const (
	TestTypeBATS        TestType = "BATS"
	TestTypeSmoke       TestType = "Smoke"
	TestTypeRegression  TestType = "Regression"
	TestTypeDBT         TestType = "DBT"
	TestTypeUnit        TestType = "Unit"
	TestTypePerformance TestType = "Performance"
)

var allTestTypes = []TestType{
	TestTypeBATS, TestTypeSmoke, TestTypeRegression, TestTypeDBT, TestTypeUnit, TestTypePerformance,
}

// AllTestTypes returns every TestType the server accepts.
func AllTestTypes() []TestType {
	return append([]TestType(nil), allTestTypes...)
}

func (t TestType) IsValid() bool {
	for _, v := range allTestTypes {
		if t == v {
			return true
		}
	}
	return false
}

// Language is the product language a test set runs against.
type Language string

const (
	LanguageEnglish    Language = "English"
	LanguageJapanese   Language = "Japanese"
	LanguageFrench     Language = "French"
	LanguageItalian    Language = "Italian"
	LanguageGerman     Language = "German"
	LanguageSpanish    Language = "Spanish"
	LanguagePortuguese Language = "Portuguese"
	LanguageChinese    Language = "Chinese"
	LanguageKorean     Language = "Korean"
)

var allLanguages = []Language{
	LanguageEnglish, LanguageJapanese, LanguageFrench, LanguageItalian, LanguageGerman,
	LanguageSpanish, LanguagePortuguese, LanguageChinese, LanguageKorean,
}

// AllLanguages returns every Language the server accepts.
func AllLanguages() []Language {
	return append([]Language(nil), allLanguages...)
}

func (l Language) IsValid() bool {
	for _, v := range allLanguages {
		if l == v {
			return true
		}
	}
	return false
}

// Result is the outcome of a test case.
type Result string

const (
	ResultPass        Result = "PASS"
	ResultFail        Result = "FAIL"
	ResultRunning     Result = "RUNNING"
	ResultConfig      Result = "CONFIG"
	ResultScript      Result = "SCRIPT"
	ResultProduct     Result = "PRODUCT"
	ResultRerunPass   Result = "RERUNPASS"
	ResultUnsupported Result = "UNSUPPORTED"
)

var allResults = []Result{
	ResultPass, ResultFail, ResultRunning, ResultConfig, ResultScript, ResultProduct,
	ResultRerunPass, ResultUnsupported,
}

func (r Result) IsValid() bool {
	for _, v := range allResults {
		if r == v {
			return true
		}
	}
	return false
}

// VerifyResult is the outcome of a single verification.
type VerifyResult string

const (
	VerifyTrue  VerifyResult = "TRUE"
	VerifyFalse VerifyResult = "FALSE"
)

func verifyResultOf(actual, expected string) VerifyResult {
	if actual == expected {
		return VerifyTrue
	}
	return VerifyFalse
}
