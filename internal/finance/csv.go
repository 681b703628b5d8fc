package finance

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024

	// csvByteOrderMark lets spreadsheet tools detect UTF-8 Cyrillic content.
	csvByteOrderMark = "\uFEFF"
)

// transactionCSVColumns is the declared column contract of the export; the
// order is part of the interface, not an artifact of struct layout.
var transactionCSVColumns = []string{
	"Огноо",
	"Төрөл",
	"Дүн",
	"Тайлбар",
	"Ангилал",
	"Баримтын дугаар",
}

// typeLabels maps transaction types to their localized display labels.
var typeLabels = map[TransactionType]string{
	TypeIncome:  "Орлого",
	TypeExpense: "Зарлага",
}

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeRaw(text string) error {
	if s == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	_, err := s.buf.WriteString(text)
	return err
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	return s.Flush()
}

// renderTransactionsCSV serializes one row per transaction under the declared
// header. Fields containing commas or quotes are quoted by the codec.
func renderTransactionsCSV(transactions []Transaction) (string, error) {
	var sb strings.Builder
	streamer := newCSVStreamer(&sb)
	if err := streamer.writeRaw(csvByteOrderMark); err != nil {
		return "", err
	}
	if err := streamer.writeRow(transactionCSVColumns); err != nil {
		return "", err
	}
	for _, tx := range transactions {
		label := tx.CategoryName
		row := []string{
			tx.Date.Format("2006-01-02"),
			typeLabels[tx.Type],
			tx.Amount.String(),
			tx.Description,
			label,
			tx.DocumentNo,
		}
		if err := streamer.writeRow(row); err != nil {
			return "", err
		}
	}
	if err := streamer.Close(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
