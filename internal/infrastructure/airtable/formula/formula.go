// Package formula construye expresiones filterByFormula de Airtable.
//
// Todo literal de texto pasa por Quote antes de interpolarse: una comilla sin escapar
// permitiría alterar la expresión y con ello qué filas devuelve el store.
package formula

import (
	"strings"
)

// Formula expresión booleana. La fórmula vacía significa "sin filtro" (coincide todo).
type Formula string

// Empty indica si no hay filtro que enviar.
func (f Formula) Empty() bool { return f == "" }

func (f Formula) String() string { return string(f) }

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Quote escapa backslashes y comillas simples y envuelve el literal en comillas simples.
// El backslash se escapa primero: "\'" de entrada no puede cerrar la cadena.
func Quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}

// Field referencia a un campo: {Nombre}. Las llaves del nombre se descartan.
func Field(name string) string {
	name = strings.NewReplacer("{", "", "}", "").Replace(name)
	return "{" + name + "}"
}

// Eq igualdad exacta (case-sensitive) contra un campo.
func Eq(field, value string) Formula {
	return Formula(Field(field) + " = " + Quote(value))
}

// Member verdadero si value aparece dentro de un campo multivalor (join + substring).
func Member(field, value string) Formula {
	return Formula("FIND(" + Quote(value) + ", ARRAYJOIN(" + Field(field) + ", ','))")
}

// Flag igualdad contra un checkbox codificado 0/1.
func Flag(field string, value bool) Formula {
	v := "0"
	if value {
		v = "1"
	}
	return Formula(Field(field) + " = " + v)
}

// Search verdadero si query (en minúsculas) es substring de CUALQUIERA de los campos (en minúsculas).
// Sin campos o con query vacío no filtra.
func Search(query string, fields ...string) Formula {
	if query == "" || len(fields) == 0 {
		return ""
	}
	q := Quote(strings.ToLower(query))
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, "FIND("+q+", LOWER("+Field(f)+"))>0")
	}
	if len(parts) == 1 {
		return Formula(parts[0])
	}
	return Formula("OR(" + strings.Join(parts, ", ") + ")")
}

// And conjunción de los predicados no vacíos. Ninguno -> fórmula vacía; uno -> él mismo.
func And(parts ...Formula) Formula {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if !p.Empty() {
			kept = append(kept, string(p))
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return Formula(kept[0])
	}
	return Formula("AND(" + strings.Join(kept, ", ") + ")")
}

// Or disyunción de los predicados no vacíos, con las mismas reglas que And.
func Or(parts ...Formula) Formula {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if !p.Empty() {
			kept = append(kept, string(p))
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return Formula(kept[0])
	}
	return Formula("OR(" + strings.Join(kept, ", ") + ")")
}

// Blank verdadero si el campo está vacío.
func Blank(field string) Formula {
	return Formula(Field(field) + " = BLANK()")
}
