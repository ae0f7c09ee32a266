// internal/conciliacao/matcher.go
package conciliacao

import (
	"math"
	"sort"
	"time"

	"github.com/decorart/api-financeiro/internal/movimentobancario"
)

// Política de pareamento: banda de valor e janelas de proximidade de data.
const (
	ToleranciaValor = 0.10 // banda de ±10% sobre o valor do alvo

	JanelaDataCurta = 10 // dias; proximidade plena
	JanelaDataLonga = 30 // dias; proximidade parcial
)

// TipoAlvo diz o que o movimento quitaria: parcela de conta a receber
// (créditos) ou conta a pagar (débitos).
type TipoAlvo string

const (
	AlvoParcela    TipoAlvo = "parcela"
	AlvoContaPagar TipoAlvo = "conta_pagar"
)

// Alvo é um recebível/pagável em aberto aguardando conciliação.
type Alvo struct {
	Tipo         TipoAlvo  `json:"tipo"`
	ID           uint      `json:"id"`
	Valor        float64   `json:"valor"`
	DataPrevista time.Time `json:"dataPrevista"`
	Descricao    string    `json:"descricao"`
}

// Confianca classifica o candidato para a revisão do operador.
type Confianca string

const (
	ConfiancaAlta  Confianca = "alta"
	ConfiancaMedia Confianca = "media"
	ConfiancaBaixa Confianca = "baixa"
)

// Candidato é um movimento bancário compatível com um alvo, com pontuação.
type Candidato struct {
	MovimentoID uint      `json:"movimentoId"`
	Descricao   string    `json:"descricao"`
	Valor       float64   `json:"valor"`
	Data        time.Time `json:"data"`
	Score       float64   `json:"score"`
	Confianca   Confianca `json:"confianca"`
}

// CandidatosAlvo reúne os candidatos ranqueados de um alvo.
type CandidatosAlvo struct {
	Alvo       Alvo        `json:"alvo"`
	Candidatos []Candidato `json:"candidatos"`
}

// BuscarCandidatos gera, para cada alvo em aberto, os movimentos não
// conciliados compatíveis, ranqueados por pontuação. Nunca aplica nada:
// aceitar um candidato é decisão explícita do chamador.
func BuscarCandidatos(movimentos []movimentobancario.MovimentoBancario, alvos []Alvo) []CandidatosAlvo {
	resultado := make([]CandidatosAlvo, 0, len(alvos))

	for _, alvo := range alvos {
		ca := CandidatosAlvo{Alvo: alvo}
		// Alvos com valor não positivo não geram candidatos (defensivo;
		// a validação de entrada deveria impedir).
		if alvo.Valor > 0 {
			for _, mv := range movimentos {
				if mv.Conciliado || mv.Ignorado {
					continue
				}
				if !direcaoCompativel(alvo.Tipo, mv.Direcao) {
					continue
				}
				if !dentroDaBanda(mv.Valor, alvo.Valor) {
					continue
				}
				ca.Candidatos = append(ca.Candidatos, avaliar(mv, alvo))
			}
			sort.SliceStable(ca.Candidatos, func(i, j int) bool {
				if ca.Candidatos[i].Score != ca.Candidatos[j].Score {
					return ca.Candidatos[i].Score > ca.Candidatos[j].Score
				}
				return ca.Candidatos[i].MovimentoID < ca.Candidatos[j].MovimentoID
			})
		}
		resultado = append(resultado, ca)
	}

	return resultado
}

func direcaoCompativel(tipo TipoAlvo, direcao string) bool {
	switch tipo {
	case AlvoParcela:
		return direcao == movimentobancario.DirecaoCredito
	case AlvoContaPagar:
		return direcao == movimentobancario.DirecaoDebito
	}
	return false
}

func dentroDaBanda(valorMovimento, valorAlvo float64) bool {
	return valorMovimento >= valorAlvo*(1-ToleranciaValor) &&
		valorMovimento <= valorAlvo*(1+ToleranciaValor)
}

// avaliar pontua um candidato já dentro da banda: proximidade de valor pesa
// 70%, proximidade de data 30% (decaindo pelas janelas de 10/30 dias).
func avaliar(mv movimentobancario.MovimentoBancario, alvo Alvo) Candidato {
	proximidadeValor := 1 - math.Abs(mv.Valor-alvo.Valor)/alvo.Valor

	dias := diasEntre(mv.Data, alvo.DataPrevista)
	var proximidadeData float64
	switch {
	case dias <= JanelaDataCurta:
		proximidadeData = 1.0
	case dias <= JanelaDataLonga:
		proximidadeData = 0.5
	default:
		proximidadeData = 0.2
	}

	score := 0.7*proximidadeValor + 0.3*proximidadeData

	confianca := ConfiancaBaixa
	switch {
	case proximidadeValor >= 0.995 && dias <= JanelaDataCurta:
		confianca = ConfiancaAlta
	case score >= 0.75:
		confianca = ConfiancaMedia
	}

	return Candidato{
		MovimentoID: mv.ID,
		Descricao:   mv.Descricao,
		Valor:       mv.Valor,
		Data:        mv.Data,
		Score:       score,
		Confianca:   confianca,
	}
}

func diasEntre(a, b time.Time) int {
	d := a.Sub(b)
	if d < 0 {
		d = -d
	}
	return int(d.Hours() / 24)
}
