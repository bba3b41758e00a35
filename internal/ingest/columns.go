package ingest

import (
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/transport-report/internal/model"
)

// DefaultColumns maps the headers of the dispatch system's master_dataset
// export to canonical fields. Canonical names map to themselves so that a
// file exported by this tool can be uploaded again.
var DefaultColumns = map[string]model.Field{
	"MX02:วันที่มอบหมายงาน":        model.FieldAssignDate,
	"job_id":                      model.FieldJobID,
	"MX12:จำนวนใบนำส่ง (ใบ)":       model.FieldNumDeliveries,
	"MX12:จำนวนสินค้า (รายการ)":    model.FieldNumItems,
	"MX12:ค่าเที่ยวขนส่ง (บาท)":     model.FieldTotalCost,
	"MX12:ค่าเที่ยวเพิ่มเติม (บาท)":  model.FieldAdditionalCost,
	"MX12:เส้นทางขนส่ง":           model.FieldRouteName,
	"MX12:nan ส่งสำเร็จ":           model.FieldSuccessCount,
	"MX12:nan ไม่สำเร็จ":           model.FieldFailCount,
	"assign_date":                 model.FieldAssignDate,
	"num_deliveries":              model.FieldNumDeliveries,
	"num_items":                   model.FieldNumItems,
	"total_cost":                  model.FieldTotalCost,
	"additional_cost":             model.FieldAdditionalCost,
	"route_name":                  model.FieldRouteName,
	"success_count":               model.FieldSuccessCount,
	"fail_count":                  model.FieldFailCount,
	"cost_sum":                    model.FieldCostSum,
}

// columnsFile is the YAML layout of an alias file:
//
//	columns:
//	  "Assigned On": assign_date
//	  "Route": route_name
type columnsFile struct {
	Columns map[string]string `yaml:"columns"`
}

// LoadColumnsFile reads extra header aliases from a YAML file. Every alias
// must name a canonical field.
func LoadColumnsFile(path string) (map[string]model.Field, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: read columns file %s", path)
	}
	return ParseColumns(data)
}

// ParseColumns decodes a YAML alias document.
func ParseColumns(data []byte) (map[string]model.Field, error) {
	var doc columnsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "ingest: parse columns file")
	}

	out := make(map[string]model.Field, len(doc.Columns))
	for header, target := range doc.Columns {
		f, ok := model.ParseField(target)
		if !ok {
			return nil, eris.Errorf("ingest: column %q maps to unknown field %q", header, target)
		}
		out[header] = f
	}
	return out, nil
}

// headerKey is the form both sides of a header comparison are reduced to.
// NFC keeps visually identical Thai headers with different combining-mark
// encodings from missing the lookup; no other folding is applied.
func headerKey(h string) string {
	return norm.NFC.String(h)
}

func buildColumnIndex(aliases map[string]model.Field) map[string]model.Field {
	idx := make(map[string]model.Field, len(DefaultColumns)+len(aliases))
	for h, f := range DefaultColumns {
		idx[headerKey(h)] = f
	}
	for h, f := range aliases {
		idx[headerKey(h)] = f
	}
	return idx
}
