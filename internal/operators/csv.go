// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operators

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/operator-search/pkg/types"
)

// Column names as published in the ANS "operadoras ativas" export.
const (
	colRegistroANS             = "registro_ans"
	colCNPJ                    = "cnpj"
	colRazaoSocial             = "razao_social"
	colNomeFantasia            = "nome_fantasia"
	colModalidade              = "modalidade"
	colLogradouro              = "logradouro"
	colNumero                  = "numero"
	colComplemento             = "complemento"
	colBairro                  = "bairro"
	colCidade                  = "cidade"
	colUF                      = "uf"
	colCEP                     = "cep"
	colDDD                     = "ddd"
	colTelefone                = "telefone"
	colFax                     = "fax"
	colEnderecoEletronico      = "endereco_eletronico"
	colRepresentante           = "representante"
	colCargoRepresentante      = "cargo_representante"
	colRegiaoDeComercializacao = "regiao_de_comercializacao"
	colDataRegistroANS         = "data_registro_ans"
)

var requiredColumns = []string{
	colRegistroANS, colCNPJ, colRazaoSocial, colNomeFantasia, colModalidade,
	colLogradouro, colNumero, colComplemento, colBairro, colCidade, colUF,
	colCEP, colDDD, colTelefone, colFax, colEnderecoEletronico,
	colRepresentante, colCargoRepresentante, colRegiaoDeComercializacao,
	colDataRegistroANS,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// RowError describes a CSV record that could not be turned into an Operator.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

var errMissingRegistro = errors.New("empty Registro_ANS")

// Reader decodes operators from a ';'-delimited CSV with a header row.
type Reader struct {
	r      *csv.Reader
	index  map[string]int
	fields int
}

// NewReader reads the header and checks that every expected column is
// present. A leading UTF-8 BOM is skipped.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("reading CSV header: file is empty")
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV header missing columns: %s", strings.Join(missing, ", "))
	}

	return &Reader{r: cr, index: index, fields: len(header)}, nil
}

// Next returns the next operator. It returns io.EOF when input is
// exhausted and a *RowError for a record that should be skipped; callers
// may keep calling Next after a *RowError.
func (rd *Reader) Next() (types.Operator, error) {
	record, err := rd.r.Read()
	if err == io.EOF {
		return types.Operator{}, io.EOF
	}
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return types.Operator{}, &RowError{Line: pe.Line, Err: pe.Err}
		}
		return types.Operator{}, err
	}
	line, _ := rd.r.FieldPos(0)
	if len(record) != rd.fields {
		return types.Operator{}, &RowError{
			Line: line,
			Err:  fmt.Errorf("expected %d fields, got %d", rd.fields, len(record)),
		}
	}

	get := func(col string) string {
		return strings.TrimSpace(record[rd.index[col]])
	}
	opt := func(col string) *string {
		v := get(col)
		if v == "" {
			return nil
		}
		return &v
	}

	op := types.Operator{
		RegistroANS:             get(colRegistroANS),
		CNPJ:                    get(colCNPJ),
		RazaoSocial:             get(colRazaoSocial),
		NomeFantasia:            opt(colNomeFantasia),
		Modalidade:              get(colModalidade),
		Logradouro:              get(colLogradouro),
		Numero:                  get(colNumero),
		Complemento:             opt(colComplemento),
		Bairro:                  get(colBairro),
		Cidade:                  get(colCidade),
		UF:                      get(colUF),
		CEP:                     get(colCEP),
		DDD:                     opt(colDDD),
		Telefone:                opt(colTelefone),
		Fax:                     opt(colFax),
		EnderecoEletronico:      opt(colEnderecoEletronico),
		Representante:           opt(colRepresentante),
		CargoRepresentante:      opt(colCargoRepresentante),
		RegiaoDeComercializacao: opt(colRegiaoDeComercializacao),
		DataRegistroANS:         get(colDataRegistroANS),
	}
	if op.RegistroANS == "" {
		return types.Operator{}, &RowError{Line: line, Err: errMissingRegistro}
	}
	return op, nil
}
