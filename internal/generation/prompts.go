package generation

import (
	"fmt"
	"strings"

	"github.com/alnah/go-bnccdoc/internal/curriculum"
)

// Context limits, in characters, for text carried into a prompt.
const (
	PreviousStageLimit = 1000
	PlanContentLimit   = 2000
)

// LessonStages is the number of lesson plans in a sequence.
const LessonStages = 5

// LessonTitles are the titles of lesson stages 1 to 5.
var LessonTitles = [LessonStages]string{
	"Plano 01 – Introdução",
	"Plano 02 – Desenvolvimento",
	"Plano 03 – Aplicação",
	"Plano 04 – Análise",
	"Plano 05 – Produção Final",
}

// TheoryPrompt asks for the theoretical foundation (stage 0) of a skill.
func TheoryPrompt(skillCode string) string {
	year, axis, desc := curriculum.Describe(skillCode)

	return fmt.Sprintf(`Você é um especialista em Computação na Educação Básica, seguindo rigorosamente o "Complemento à BNCC de Computação".
Gere a FASE 0 (Fundamentação Teórica) para a habilidade: %[1]s - %[2]s, voltada para o %[3]s.

EIXO BNCC: %[4]s

CONTEXTO OBRIGATÓRIO:
A Computação na BNCC é estruturada em três eixos:
1. Pensamento Computacional (processos de resolução de problemas).
2. Mundo Digital (artefatos, hardware, software e redes).
3. Cultura Digital (impactos, ética e cidadania).

IMPORTANTE: Este planejamento faz parte de uma SEQUÊNCIA PROGRESSIVA ANUAL. Use uma linguagem e profundidade pedagógica APROPRIADA para o %[3]s, garantindo que os conceitos construam uma base sólida para as habilidades subsequentes do mesmo ano.

ESTRUTURA OBRIGATÓRIA DA FASE 0:
### Fundamentação Teórica
* Contexto histórico e relação com a BNCC
* Fundamentos da computação específicos desta habilidade
* Aplicações reais e exemplos práticos
* Relação com cultura digital e sociedade
* Conexão com o pensamento computacional (algoritmos, decomposição, padrões, abstração)

### Subsídio ao Professor
* Fundamentação técnica para o docente
* Impactos sociais, éticos e legais (Marco Civil, LGPD se aplicável)
* Estratégias de mediação e metodologias ativas
* Dificuldades comuns dos alunos e como superá-las

REGRAS:
- Mínimo de 40 linhas de conteúdo denso e profissional.
- Use Markdown.
- Linguagem acadêmica para o professor, mas com exemplos adequados ao nível dos alunos (%[3]s).`,
		skillCode, desc, year, axis)
}

// LessonPlanPrompt asks for lesson stage 1 to 5 of a skill. previous is the
// content of the preceding stage; only its first PreviousStageLimit
// characters are sent.
func LessonPlanPrompt(skillCode string, stage int, previous string) (string, error) {
	if stage < 1 || stage > LessonStages {
		return "", fmt.Errorf("%w: got %d", ErrInvalidStage, stage)
	}
	year, axis, desc := curriculum.Describe(skillCode)

	var carried string
	if strings.TrimSpace(previous) != "" {
		carried = "Considere o que foi planejado anteriormente nesta sequência: " + truncate(previous, PreviousStageLimit)
	}

	return fmt.Sprintf(`Você é um especialista em BNCC de Computação.
Gere o %[1]s para a habilidade: %[2]s - %[3]s, voltada para o %[4]s.
EIXO BNCC: %[5]s

Baseie-se no documento oficial "Complemento à BNCC de Computação".
%[6]s

IMPORTANTE: Este é o plano %[7]d de uma sequência de 5 planos progressivos. A linguagem das atividades e a complexidade dos conceitos devem ser RIGOROSAMENTE APROPRIADAS para o %[4]s, seguindo uma lógica de complexidade crescente.

ESTRUTURA OBRIGATÓRIA DO PLANO:
## Identificação
* Código da habilidade: %[2]s
* Eixo: %[5]s
* Ano escolar: %[4]s
* Tempo estimado

## Objetivos de aprendizagem

## Fundamentação teórica (mínimo 4 parágrafos)

## Metodologia (Metodologias Ativas, Computação Desplugada ou Plugada)

## Recursos

## Cronograma minuto a minuto (tabela Markdown)
| Tempo | Ação do Professor | Ação do Aluno | Estratégia |

## Avaliação
* Critérios
* Indicadores
* Rubrica (quando necessário)

REGRAS:
- Use Markdown.
- Foco total na BNCC de Computação.
- Visual profissional e pedagógico.`,
		LessonTitles[stage-1], skillCode, desc, year, axis, carried, stage), nil
}

// ResourcePrompt asks for an additional resource of the given kind, based
// on the first PlanContentLimit characters of the plan content.
func ResourcePrompt(skillCode, kind, planContent string) string {
	_, _, desc := curriculum.Describe(skillCode)

	return fmt.Sprintf(`Com base na habilidade %s - %s e nos planos gerados: %s,
gere o seguinte recurso adicional: %s.

Mantenha o padrão profissional e institucional.`,
		skillCode, desc, truncate(planContent, PlanContentLimit), kind)
}

// truncate keeps the first limit characters of s without splitting a rune.
func truncate(s string, limit int) string {
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
