// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for operator-search: the
// operator record served by the search API, the search response envelope,
// and the configuration structs for each component.
package types

// Operator is one ANS-registered health plan operator as served by
// GET /api/search. Optional fields are nil when the source cell was empty.
type Operator struct {
	// RegistroANS is the operator's registration number at ANS. Unique.
	RegistroANS string `json:"registro_ans" yaml:"registro_ans"`

	CNPJ         string  `json:"cnpj" yaml:"cnpj"`
	RazaoSocial  string  `json:"razao_social" yaml:"razao_social"`
	NomeFantasia *string `json:"nome_fantasia" yaml:"nome_fantasia"`
	Modalidade   string  `json:"modalidade" yaml:"modalidade"`

	Logradouro  string  `json:"logradouro" yaml:"logradouro"`
	Numero      string  `json:"numero" yaml:"numero"`
	Complemento *string `json:"complemento" yaml:"complemento"`
	Bairro      string  `json:"bairro" yaml:"bairro"`
	Cidade      string  `json:"cidade" yaml:"cidade"`
	UF          string  `json:"uf" yaml:"uf"`
	CEP         string  `json:"cep" yaml:"cep"`

	DDD                *string `json:"ddd" yaml:"ddd"`
	Telefone           *string `json:"telefone" yaml:"telefone"`
	Fax                *string `json:"fax" yaml:"fax"`
	EnderecoEletronico *string `json:"endereco_eletronico" yaml:"endereco_eletronico"`

	Representante           *string `json:"representante" yaml:"representante"`
	CargoRepresentante      *string `json:"cargo_representante" yaml:"cargo_representante"`
	RegiaoDeComercializacao *string `json:"regiao_de_comercializacao" yaml:"regiao_de_comercializacao"`

	// DataRegistroANS is kept as the source string (YYYY-MM-DD in current exports).
	DataRegistroANS string `json:"data_registro_ans" yaml:"data_registro_ans"`
}

// DisplayName returns the trade name when present, otherwise the legal name.
func (o Operator) DisplayName() string {
	if o.NomeFantasia != nil && *o.NomeFantasia != "" {
		return *o.NomeFantasia
	}
	return o.RazaoSocial
}
