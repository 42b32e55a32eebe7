// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package operators

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/operator-search/pkg/types"
)

const csvHeader = "Registro_ANS;CNPJ;Razao_Social;Nome_Fantasia;Modalidade;Logradouro;Numero;Complemento;Bairro;Cidade;UF;CEP;DDD;Telefone;Fax;Endereco_eletronico;Representante;Cargo_Representante;Regiao_de_Comercializacao;Data_Registro_ANS\n"

const sampleCSV = "\ufeff" + csvHeader +
	"419761;19541931000125;18 DE JULHO ADMINISTRADORA DE BENEFÍCIOS LTDA;;Administradora de Benefícios;AVENIDA MÁRIO COVAS;151;SALA 101;CENTRO;Além Paraíba;MG;36660000;32;34624000;;contato@18dejulho.com.br;MARIA SILVA;DIRETORA;;2015-05-19\n" +
	"326305;44649812000138;AMIL ASSISTÊNCIA MÉDICA INTERNACIONAL S.A.;AMIL;Medicina de Grupo;RUA ARQUITETO OLAVO REDIG DE CAMPOS;105;TORRE B;CHÁCARA SANTO ANTÔNIO;São Paulo;SP;04711904;11;30040000;;;JOSÉ SOUZA;DIRETOR;1;1998-12-22\n" +
	"343889;38024370000145;UNIMED RECIFE COOPERATIVA DE TRABALHO MÉDICO;UNIMED RECIFE;Cooperativa Médica;AVENIDA AGAMENON MAGALHÃES;4656;;DERBY;Recife;PE;52010040;81;34132000;;;ANA LIMA;PRESIDENTE;4;1999-01-12\n" +
	"999001;11111111000111;PLANO 100% SAUDE_TOTAL LTDA;;Medicina de Grupo;RUA A;1;;CENTRO;Santos;SP;11000000;;;;;;;;2020-01-01\n"

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "data", "operators.db")}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func loadSample(t *testing.T, store *Store) {
	t.Helper()
	summary, err := store.Import(context.Background(), strings.NewReader(sampleCSV), &bytes.Buffer{})
	require.NoError(t, err)
	require.Equal(t, 4, summary.Imported)
}

func TestImport_ParsesFields(t *testing.T) {
	store := testStore(t)
	loadSample(t, store)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got, err := store.Search(context.Background(), "amil", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	op := got[0]
	assert.Equal(t, "326305", op.RegistroANS)
	assert.Equal(t, "44649812000138", op.CNPJ)
	require.NotNil(t, op.NomeFantasia)
	assert.Equal(t, "AMIL", *op.NomeFantasia)
	require.NotNil(t, op.Complemento)
	assert.Equal(t, "TORRE B", *op.Complemento)
	assert.Nil(t, op.Fax)
	assert.Nil(t, op.EnderecoEletronico)
	assert.Equal(t, "São Paulo", op.Cidade)
	assert.Equal(t, "1998-12-22", op.DataRegistroANS)
}

func TestImport_SkipsBadRows(t *testing.T) {
	store := testStore(t)
	input := csvHeader +
		"1;2;OK LTDA;;M;L;1;;B;Natal;RN;59000000;;;;;;;;2001-01-01\n" +
		"too;few;fields\n" +
		";2;NO REGISTRO LTDA;;M;L;1;;B;Natal;RN;59000000;;;;;;;;2001-01-01\n"

	var w bytes.Buffer
	summary, err := store.Import(context.Background(), strings.NewReader(input), &w)
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Imported: 1, Skipped: 2}, summary)
	assert.Contains(t, w.String(), "line 3")
	assert.Contains(t, w.String(), "line 4")
	assert.Contains(t, w.String(), "empty Registro_ANS")
}

func TestImport_MissingColumns(t *testing.T) {
	store := testStore(t)
	_, err := store.Import(context.Background(), strings.NewReader("Registro_ANS;CNPJ\n1;2\n"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "razao_social")
}

func TestImport_EmptyInput(t *testing.T) {
	store := testStore(t)
	_, err := store.Import(context.Background(), strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestImport_UpsertIsIdempotent(t *testing.T) {
	store := testStore(t)
	loadSample(t, store)
	loadSample(t, store)

	n, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestSearch(t *testing.T) {
	store := testStore(t)
	loadSample(t, store)

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"legal name substring", "cooperativa", 10, []string{"343889"}},
		{"trade name", "unimed", 10, []string{"343889"}},
		{"city", "recife", 10, []string{"343889"}},
		{"case insensitive", "AmIl", 10, []string{"326305"}},
		{"accent insensitive query", "sao paulo", 10, []string{"326305"}},
		{"accent insensitive data", "Beneficios", 10, []string{"419761"}},
		{"accented query", "ALÉM", 10, []string{"419761"}},
		{"import order", "ltda", 10, []string{"419761", "999001"}},
		{"limit applied", "a", 2, []string{"419761", "326305"}},
		{"percent is literal", "100%", 10, []string{"999001"}},
		{"underscore is literal", "saude_total", 10, []string{"999001"}},
		{"wildcards do not expand", "a%z", 10, nil},
		{"no match", "zzzz", 10, nil},
		{"zero limit", "a", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Search(context.Background(), tt.query, tt.limit)
			require.NoError(t, err)
			require.NotNil(t, got)

			var ids []string
			for _, op := range got {
				ids = append(ids, op.RegistroANS)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestLoadIfEmpty(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "operadoras.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	store := testStore(t)
	ctx := context.Background()

	summary, err := store.LoadIfEmpty(ctx, csvPath, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Imported)

	// Populated store is left alone.
	summary, err = store.LoadIfEmpty(ctx, csvPath, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{}, summary)
}

func TestLoadIfEmpty_MissingFile(t *testing.T) {
	store := testStore(t)
	summary, err := store.LoadIfEmpty(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{}, summary)
}

func TestNewStore_InMemory(t *testing.T) {
	store, err := NewStore(types.StoreConfig{Path: ":memory:"}, nil)
	require.NoError(t, err)
	defer store.Close()

	loadSample(t, store)
	got, err := store.Search(context.Background(), "recife", 10)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestFold(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"São José", "sao jose"},
		{"AÇÃO", "acao"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, fold(tt.in))
		})
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%abc%`, likePattern("ABC"))
	assert.Equal(t, `%10\%%`, likePattern("10%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}
