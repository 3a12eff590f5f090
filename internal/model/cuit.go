package model

// cuitCoeficientes weights the first ten digits of a CUIT.
var cuitCoeficientes = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// ValidarCUIT reports whether s holds 11 digits with a valid check digit.
// Separators are ignored, so "20-12345678-6" and "20123456786" are equivalent.
func ValidarCUIT(s string) bool {
	digitos := make([]int, 0, 11)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digitos = append(digitos, int(r-'0'))
		}
	}
	if len(digitos) != 11 {
		return false
	}

	suma := 0
	for i, c := range cuitCoeficientes {
		suma += c * digitos[i]
	}
	dv := 11 - suma%11
	switch dv {
	case 11:
		dv = 0
	case 10:
		dv = 9
	}
	return dv == digitos[10]
}
