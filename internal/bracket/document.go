package bracket

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Value stores the bracket as an opaque JSON document.
func (b Bracket) Value() (driver.Value, error) {
	return json.Marshal(b)
}

func (b *Bracket) Scan(src any) error {
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("bracket: cannot scan %T", src)
	}
	return json.Unmarshal(data, b)
}
