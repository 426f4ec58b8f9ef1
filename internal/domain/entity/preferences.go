package entity

import "strings"

// Preferences gustos, disgustos y alergias del usuario. Cada lista es un conjunto:
// sin vacíos, sin duplicados, en orden de primera aparición.
type Preferences struct {
	Likes     []string
	Dislikes  []string
	Allergies []string
}

// Normalize devuelve una copia con las tres listas normalizadas.
func (p Preferences) Normalize() Preferences {
	return Preferences{
		Likes:     NormalizeList(p.Likes),
		Dislikes:  NormalizeList(p.Dislikes),
		Allergies: NormalizeList(p.Allergies),
	}
}

// NormalizeList recorta espacios, descarta vacíos y elimina duplicados exactos.
// Nunca devuelve nil.
func NormalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
