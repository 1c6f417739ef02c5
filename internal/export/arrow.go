// Package export writes filtered salary views in columnar formats.
package export

import (
	"fmt"
	"io"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"salarydash/internal/engine"
)

// ArrowContentType is the media type of an Arrow IPC stream.
const ArrowContentType = "application/vnd.apache.arrow.stream"

// Schema describes one salary record.
var Schema = arrow.NewSchema([]arrow.Field{
	{Name: "year", Type: arrow.PrimitiveTypes.Int32},
	{Name: "seniority", Type: arrow.BinaryTypes.String},
	{Name: "contract_type", Type: arrow.BinaryTypes.String},
	{Name: "company_size", Type: arrow.BinaryTypes.String},
	{Name: "role_title", Type: arrow.BinaryTypes.String},
	{Name: "remote_mode", Type: arrow.BinaryTypes.String},
	{Name: "residence_iso3", Type: arrow.BinaryTypes.String},
	{Name: "salary_usd", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// batchRows bounds the size of each record batch in the stream.
const batchRows = 64 * 1024

// WriteArrow streams the rows of v as Arrow IPC record batches.
func WriteArrow(w io.Writer, v *engine.View) error {
	mem := memory.NewGoAllocator()
	writer := ipc.NewWriter(w, ipc.WithSchema(Schema), ipc.WithAllocator(mem))

	b := array.NewRecordBuilder(mem, Schema)
	defer b.Release()

	cs := v.Store()
	flush := func() error {
		rec := b.NewRecord()
		defer rec.Release()
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("write arrow batch: %w", err)
		}
		return nil
	}

	pending := 0
	for i := 0; i < v.Len(); i++ {
		row := v.Index(i)
		b.Field(0).(*array.Int32Builder).Append(cs.Years[row])
		b.Field(1).(*array.StringBuilder).Append(cs.SeniorityDict[cs.SeniorityIDs[row]])
		b.Field(2).(*array.StringBuilder).Append(cs.ContractDict[cs.ContractIDs[row]])
		b.Field(3).(*array.StringBuilder).Append(cs.SizeDict[cs.SizeIDs[row]])
		b.Field(4).(*array.StringBuilder).Append(cs.RoleDict[cs.RoleIDs[row]])
		b.Field(5).(*array.StringBuilder).Append(cs.RemoteDict[cs.RemoteIDs[row]])
		b.Field(6).(*array.StringBuilder).Append(cs.CountryDict[cs.CountryIDs[row]])
		b.Field(7).(*array.Float64Builder).Append(cs.Salaries[row])
		pending++

		if pending == batchRows {
			if err := flush(); err != nil {
				writer.Close()
				return err
			}
			pending = 0
		}
	}
	if pending > 0 {
		if err := flush(); err != nil {
			writer.Close()
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close arrow stream: %w", err)
	}
	return nil
}
