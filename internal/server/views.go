package server

import (
	"time"

	bnccdoc "github.com/alnah/go-bnccdoc"
)

// JSON field names match the schema the web client already consumes.

type planView struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	SkillCode  string    `json:"habilidade_codigo"`
	SchoolYear string    `json:"ano_escolar"`
	Axis       string    `json:"eixo"`
	Theory     string    `json:"fase_zero"`
	Lesson1    string    `json:"plano_01"`
	Lesson2    string    `json:"plano_02"`
	Lesson3    string    `json:"plano_03"`
	Lesson4    string    `json:"plano_04"`
	Lesson5    string    `json:"plano_05"`
	Progress   int       `json:"plano_atual"`
	Completed  bool      `json:"concluido"`
	CreatedAt  time.Time `json:"created_at"`
}

func newPlanView(p *bnccdoc.Plan) planView {
	return planView{
		ID:         p.ID,
		UserID:     p.OwnerID,
		SkillCode:  p.SkillCode,
		SchoolYear: p.SchoolYear,
		Axis:       p.Axis,
		Theory:     p.Theory,
		Lesson1:    p.Lessons[0],
		Lesson2:    p.Lessons[1],
		Lesson3:    p.Lessons[2],
		Lesson4:    p.Lessons[3],
		Lesson5:    p.Lessons[4],
		Progress:   p.Progress,
		Completed:  p.Completed,
		CreatedAt:  p.CreatedAt,
	}
}

func newPlanViews(plans []*bnccdoc.Plan) []planView {
	views := make([]planView, len(plans))
	for i, p := range plans {
		views[i] = newPlanView(p)
	}
	return views
}

type settingsView struct {
	SecretariatName  string `json:"secretaria_nome"`
	MunicipalityName string `json:"municipio_nome"`
	StateName        string `json:"estado_nome"`
	MunicipalityLogo string `json:"logo_prefeitura"`
	SecretariatLogo  string `json:"logo_secretaria"`
	SignatoryName    string `json:"nome_secretario"`
	SignatureImage   string `json:"assinatura_digital"`
	ExportConfig     string `json:"config_exportacao"`
}

func newSettingsView(s *bnccdoc.Settings) settingsView {
	return settingsView{
		SecretariatName:  s.SecretariatName,
		MunicipalityName: s.MunicipalityName,
		StateName:        s.StateName,
		MunicipalityLogo: s.MunicipalityLogo,
		SecretariatLogo:  s.SecretariatLogo,
		SignatoryName:    s.SignatoryName,
		SignatureImage:   s.SignatureImage,
		ExportConfig:     s.ExportConfig,
	}
}

func (v settingsView) toDomain() *bnccdoc.Settings {
	return &bnccdoc.Settings{
		SecretariatName:  v.SecretariatName,
		MunicipalityName: v.MunicipalityName,
		StateName:        v.StateName,
		MunicipalityLogo: v.MunicipalityLogo,
		SecretariatLogo:  v.SecretariatLogo,
		SignatoryName:    v.SignatoryName,
		SignatureImage:   v.SignatureImage,
		ExportConfig:     v.ExportConfig,
	}
}

type userView struct {
	ID     int64        `json:"id"`
	Name   string       `json:"nome"`
	Role   bnccdoc.Role `json:"perfil"`
	School string       `json:"escola,omitempty"`
}

func newUserView(u *bnccdoc.User) userView {
	return userView{ID: u.ID, Name: u.Name, Role: u.Role, School: u.School}
}
