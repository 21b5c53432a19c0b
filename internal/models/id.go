package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID est un identifiant opaque (produit, vendeur).
// Le magasin d'origine utilise des entiers, on accepte donc les deux formes en
// JSON et on réécrit un nombre quand l'identifiant est entier.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	// "007" ou "+5" restent des chaînes : seul un entier canonique est réécrit en nombre
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("identifiant invalide %s: %w", data, err)
	}
	*id = ID(n.String())
	return nil
}
