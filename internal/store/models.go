package store

import (
	"time"

	bnccdoc "github.com/alnah/go-bnccdoc"
)

// settingsRowID is the primary key of the settings singleton.
const settingsRowID = 1

// Column names follow the existing Portuguese schema so databases created
// by earlier deployments keep working.

type userModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"column:nome;not null"`
	Email        string `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string `gorm:"column:senha;not null"`
	Role         string `gorm:"column:perfil;not null"`
	School       string `gorm:"column:escola"`
	CreatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func (m *userModel) toDomain() *bnccdoc.User {
	return &bnccdoc.User{
		ID:     m.ID,
		Name:   m.Name,
		Email:  m.Email,
		School: m.School,
		Role:   bnccdoc.Role(m.Role),
	}
}

type planModel struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     int64     `gorm:"column:user_id;index"`
	Owner      userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SkillCode  string    `gorm:"column:habilidade_codigo;not null"`
	SchoolYear string    `gorm:"column:ano_escolar;index"`
	Axis       string    `gorm:"column:eixo"`
	Theory     string    `gorm:"column:fase_zero"`
	Lesson1    string    `gorm:"column:plano_01"`
	Lesson2    string    `gorm:"column:plano_02"`
	Lesson3    string    `gorm:"column:plano_03"`
	Lesson4    string    `gorm:"column:plano_04"`
	Lesson5    string    `gorm:"column:plano_05"`
	Progress   int       `gorm:"column:plano_atual;default:0"`
	Completed  bool      `gorm:"column:concluido;default:false"`
	CreatedAt  time.Time
}

func (planModel) TableName() string { return "plans" }

func (m *planModel) toDomain() *bnccdoc.Plan {
	return &bnccdoc.Plan{
		ID:         m.ID,
		OwnerID:    m.UserID,
		SkillCode:  m.SkillCode,
		SchoolYear: m.SchoolYear,
		Axis:       m.Axis,
		Theory:     m.Theory,
		Lessons:    [bnccdoc.LessonStages]string{m.Lesson1, m.Lesson2, m.Lesson3, m.Lesson4, m.Lesson5},
		Progress:   m.Progress,
		Completed:  m.Completed,
		CreatedAt:  m.CreatedAt,
	}
}

func planFromDomain(p *bnccdoc.Plan) planModel {
	return planModel{
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

type settingsModel struct {
	ID               int    `gorm:"primaryKey"`
	SecretariatName  string `gorm:"column:secretaria_nome"`
	MunicipalityName string `gorm:"column:municipio_nome"`
	StateName        string `gorm:"column:estado_nome"`
	MunicipalityLogo string `gorm:"column:logo_prefeitura"`
	SecretariatLogo  string `gorm:"column:logo_secretaria"`
	SignatoryName    string `gorm:"column:nome_secretario"`
	SignatureImage   string `gorm:"column:assinatura_digital"`
	ExportConfig     string `gorm:"column:config_exportacao"`
}

func (settingsModel) TableName() string { return "settings" }

func (m *settingsModel) toDomain() *bnccdoc.Settings {
	return &bnccdoc.Settings{
		SecretariatName:  m.SecretariatName,
		MunicipalityName: m.MunicipalityName,
		StateName:        m.StateName,
		MunicipalityLogo: m.MunicipalityLogo,
		SecretariatLogo:  m.SecretariatLogo,
		SignatoryName:    m.SignatoryName,
		SignatureImage:   m.SignatureImage,
		ExportConfig:     m.ExportConfig,
	}
}

func settingsFromDomain(s *bnccdoc.Settings) settingsModel {
	return settingsModel{
		ID:               settingsRowID,
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
