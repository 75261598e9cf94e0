package mailer

import (
	"bytes"
	"html/template"

	"lavoplus-backend/contact"
)

// serviceLabels traduz o código do serviço para o nome exibido no
// email. Código desconhecido passa como está.
var serviceLabels = map[string]string{
	"lavado-kilo": "Lavado por Kilo",
	"lavado-seco": "Lavado en Seco",
	"planchado":   "Planchado",
	"ropa-cama":   "Lavado de Ropa de Cama",
	"express":     "Servicio Express",
	"otro":        "Otro servicio",
}

// ServiceLabel retorna o nome legível do serviço.
func ServiceLabel(code string) string {
	if label, ok := serviceLabels[code]; ok {
		return label
	}
	return code
}

type emailData struct {
	Name         string
	Email        string
	Phone        string
	ServiceLabel string
	Message      string
}

var emailTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Nuevo Contacto</title>
  </head>
  <body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
    <table role="presentation" cellpadding="0" cellspacing="0" style="width: 100%; background-color: #f3f4f6;">
      <tr>
        <td style="padding: 40px 20px;">
          <table role="presentation" cellpadding="0" cellspacing="0" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden;">
            <tr>
              <td style="background: linear-gradient(135deg, #2563eb 0%, #1d4ed8 100%); padding: 32px 24px; text-align: center;">
                <h1 style="margin: 0; color: #ffffff; font-size: 28px; font-weight: 700;">Nuevo Contacto</h1>
                <p style="margin: 8px 0 0; color: #e0e7ff; font-size: 16px;">Lavander&iacute;a Lavoplus</p>
              </td>
            </tr>
            <tr>
              <td style="padding: 32px 24px;">
                <p style="margin: 0 0 24px; color: #374151; font-size: 16px; line-height: 1.5;">
                  Has recibido un nuevo mensaje de contacto desde tu sitio web:
                </p>
                <table role="presentation" cellpadding="0" cellspacing="0" style="width: 100%; border-collapse: collapse;">
                  <tr>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb;"><strong style="color: #1f2937; font-size: 14px;">Nombre:</strong></td>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; text-align: right;"><span style="color: #374151; font-size: 14px;">{{.Name}}</span></td>
                  </tr>
                  <tr>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb;"><strong style="color: #1f2937; font-size: 14px;">Email:</strong></td>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; text-align: right;"><a href="mailto:{{.Email}}" style="color: #2563eb; font-size: 14px; text-decoration: none;">{{.Email}}</a></td>
                  </tr>
                  <tr>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb;"><strong style="color: #1f2937; font-size: 14px;">Tel&eacute;fono:</strong></td>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; text-align: right;"><a href="tel:{{.Phone}}" style="color: #2563eb; font-size: 14px; text-decoration: none;">{{.Phone}}</a></td>
                  </tr>
                  <tr>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb;"><strong style="color: #1f2937; font-size: 14px;">Servicio:</strong></td>
                    <td style="padding: 12px 0; border-bottom: 1px solid #e5e7eb; text-align: right;"><span style="display: inline-block; background-color: #dbeafe; color: #1e40af; padding: 4px 12px; border-radius: 6px; font-size: 13px; font-weight: 600;">{{.ServiceLabel}}</span></td>
                  </tr>
                </table>
                {{if .Message}}
                <div style="margin-top: 24px;">
                  <strong style="color: #1f2937; font-size: 14px; display: block; margin-bottom: 8px;">Mensaje:</strong>
                  <div style="background-color: #f9fafb; border-left: 4px solid #2563eb; padding: 16px; border-radius: 6px;">
                    <p style="margin: 0; color: #374151; font-size: 14px; line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
                  </div>
                </div>
                {{end}}
                <div style="margin-top: 32px; text-align: center;">
                  <a href="mailto:{{.Email}}" style="display: inline-block; background-color: #2563eb; color: #ffffff; text-decoration: none; padding: 14px 32px; border-radius: 8px; font-weight: 600; font-size: 15px;">Responder por Email</a>
                </div>
              </td>
            </tr>
            <tr>
              <td style="background-color: #f9fafb; padding: 24px; text-align: center; border-top: 1px solid #e5e7eb;">
                <p style="margin: 0; color: #6b7280; font-size: 13px; line-height: 1.5;">
                  Este correo fue enviado autom&aacute;ticamente desde el formulario de contacto de <strong>Lavander&iacute;a Lavoplus</strong>
                </p>
                <p style="margin: 8px 0 0; color: #9ca3af; font-size: 12px;">Los &Aacute;ngeles, Regi&oacute;n del B&iacute;o B&iacute;o, Chile</p>
              </td>
            </tr>
          </table>
        </td>
      </tr>
    </table>
  </body>
</html>
`))

// renderEmail gera o corpo HTML do email a partir da submissão. O
// html/template escapa os campos, então conteúdo hostil que tenha
// sobrevivido à sanitização não vira markup aqui.
func renderEmail(sub contact.Submission) (string, error) {
	var buf bytes.Buffer
	err := emailTmpl.Execute(&buf, emailData{
		Name:         sub.Name,
		Email:        sub.Email,
		Phone:        sub.Phone,
		ServiceLabel: ServiceLabel(sub.Service),
		Message:      sub.Message,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
