package curriculum

// skills is the BNCC Computing complement for the Ensino Fundamental,
// ordered by school year and code.
var skills = []Skill{
	// 1º Ano
	{Code: "EF01CO01", Axis: AxisComputationalThinking, Year: "1º Ano", Description: "Organizar objetos físicos ou digitais considerando diferentes características para esta organização, explicitando semelhanças (padrões) e diferenças."},
	{Code: "EF01CO02", Axis: AxisComputationalThinking, Year: "1º Ano", Description: "Identificar e seguir sequências de passos aplicados no dia a dia para resolver problemas."},
	{Code: "EF01CO03", Axis: AxisComputationalThinking, Year: "1º Ano", Description: "Reorganizar e criar sequências de passos em meios físicos ou digitais, relacionando essas sequências à palavra ‘Algoritmos’."},
	{Code: "EF01CO04", Axis: AxisDigitalWorld, Year: "1º Ano", Description: "Reconhecer o que é a informação, que ela pode ser armazenada, transmitida como mensagem por diversos meios e descrita em várias linguagens."},
	{Code: "EF01CO05", Axis: AxisDigitalWorld, Year: "1º Ano", Description: "Representar informação usando diferentes codificações."},
	{Code: "EF01CO06", Axis: AxisDigitalCulture, Year: "1º Ano", Description: "Reconhecer e explorar artefatos computacionais voltados a atender necessidades pessoais ou coletivas."},
	{Code: "EF01CO07", Axis: AxisDigitalCulture, Year: "1º Ano", Description: "Conhecer as possibilidades de uso seguro das tecnologias computacionais para proteção dos dados pessoais e para garantir a própria segurança."},

	// 2º Ano
	{Code: "EF02CO01", Axis: AxisComputationalThinking, Year: "2º Ano", Description: "Criar e comparar modelos (representações) de objetos, identificando padrões e atributos essenciais."},
	{Code: "EF02CO02", Axis: AxisComputationalThinking, Year: "2º Ano", Description: "Criar e simular algoritmos representados em linguagem oral, escrita ou pictográfica, construídos como sequências com repetições simples."},
	{Code: "EF02CO03", Axis: AxisDigitalWorld, Year: "2º Ano", Description: "Identificar que máquinas diferentes executam conjuntos próprios de instruções e que podem ser usadas para definir algoritmos."},
	{Code: "EF02CO04", Axis: AxisDigitalWorld, Year: "2º Ano", Description: "Diferenciar componentes físicos (hardware) e programas que fornecem as instruções (software) para o hardware."},
	{Code: "EF02CO05", Axis: AxisDigitalCulture, Year: "2º Ano", Description: "Reconhecer as características e usos das tecnologias computacionais no cotidiano dentro e fora da escola."},
	{Code: "EF02CO06", Axis: AxisDigitalCulture, Year: "2º Ano", Description: "Reconhecer os cuidados com a segurança no uso de dispositivos computacionais."},

	// 3º Ano
	{Code: "EF03CO01", Axis: AxisComputationalThinking, Year: "3º Ano", Description: "Associar os valores 'verdadeiro' e 'falso' a sentenças lógicas que dizem respeito a situações do dia a dia."},
	{Code: "EF03CO02", Axis: AxisComputationalThinking, Year: "3º Ano", Description: "Criar e simular algoritmos representados em linguagem oral, escrita ou pictográfica, que incluam sequências e repetições simples com condição."},
	{Code: "EF03CO03", Axis: AxisComputationalThinking, Year: "3º Ano", Description: "Aplicar a estratégia de decomposição para resolver problemas complexos."},
	{Code: "EF03CO04", Axis: AxisDigitalWorld, Year: "3º Ano", Description: "Relacionar o conceito de informação com o de dado."},
	{Code: "EF03CO05", Axis: AxisDigitalWorld, Year: "3º Ano", Description: "Compreender que dados são estruturados em formatos específicos dependendo da informação armazenada."},
	{Code: "EF03CO06", Axis: AxisDigitalWorld, Year: "3º Ano", Description: "Reconhecer que, para um computador realizar tarefas, ele se comunica com o mundo exterior com o uso de interfaces físicas."},
	{Code: "EF03CO07", Axis: AxisDigitalCulture, Year: "3º Ano", Description: "Utilizar diferentes navegadores e ferramentas de busca para pesquisar e acessar informações."},
	{Code: "EF03CO08", Axis: AxisDigitalCulture, Year: "3º Ano", Description: "Usar ferramentas computacionais em situações didáticas para se expressar em diferentes formatos digitais."},
	{Code: "EF03CO09", Axis: AxisDigitalCulture, Year: "3º Ano", Description: "Reconhecer o potencial impacto do compartilhamento de informações pessoais ou de seus pares em meio digital."},

	// 4º Ano
	{Code: "EF04CO01", Axis: AxisComputationalThinking, Year: "4º Ano", Description: "Reconhecer objetos do mundo real e/ou digital que podem ser representados através de matrizes."},
	{Code: "EF04CO02", Axis: AxisComputationalThinking, Year: "4º Ano", Description: "Reconhecer objetos do mundo real e/ou digital que podem ser representados através de registros."},
	{Code: "EF04CO03", Axis: AxisComputationalThinking, Year: "4º Ano", Description: "Criar e simular algoritmos representados em linguagem oral, escrita ou pictográfica, que incluam sequências e repetições simples e aninhadas."},
	{Code: "EF04CO04", Axis: AxisDigitalWorld, Year: "4º Ano", Description: "Entender que para guardar, manipular e transmitir dados deve-se codificá-los de alguma forma que seja compreendida pela máquina."},
	{Code: "EF04CO05", Axis: AxisDigitalWorld, Year: "4º Ano", Description: "Codificar diferentes informações para representação em computador (binária, ASCII, atributos de pixel, como RGB etc.)."},
	{Code: "EF04CO06", Axis: AxisDigitalCulture, Year: "4º Ano", Description: "Usar diferentes ferramentas computacionais para criação de conteúdo (textos, apresentações, vídeos etc.)."},
	{Code: "EF04CO07", Axis: AxisDigitalCulture, Year: "4º Ano", Description: "Demonstrar postura ética nas atividades de coleta, transferência, guarda e uso de dados."},
	{Code: "EF04CO08", Axis: AxisDigitalCulture, Year: "4º Ano", Description: "Reconhecer a importância de verificar a confiabilidade das fontes de informações obtidas na Internet."},

	// 5º Ano
	{Code: "EF05CO01", Axis: AxisComputationalThinking, Year: "5º Ano", Description: "Reconhecer objetos do mundo real e/ou digital que podem ser representados através de listas."},
	{Code: "EF05CO02", Axis: AxisComputationalThinking, Year: "5º Ano", Description: "Reconhecer objetos do mundo real e digital que podem ser representados através de grafos."},
	{Code: "EF05CO03", Axis: AxisComputationalThinking, Year: "5º Ano", Description: "Realizar operações de negação, conjunção e disjunção sobre sentenças lógicas e valores 'verdadeiro' e 'falso'."},
	{Code: "EF05CO04", Axis: AxisComputationalThinking, Year: "5º Ano", Description: "Criar e simular algoritmos representados em linguagem oral, escrita ou pictográfica, que incluam sequências, repetições e seleções condicionais."},
	{Code: "EF05CO05", Axis: AxisDigitalWorld, Year: "5º Ano", Description: "Identificar os componentes principais de um computador (dispositivos de entrada/saída, processadores e armazenamento)."},
	{Code: "EF05CO06", Axis: AxisDigitalWorld, Year: "5º Ano", Description: "Reconhecer que os dados podem ser armazenados em um dispositivo local ou remoto."},
	{Code: "EF05CO07", Axis: AxisDigitalWorld, Year: "5º Ano", Description: "Reconhecer a necessidade de um sistema operacional para a execução de programas e gerenciamento do hardware."},
	{Code: "EF05CO08", Axis: AxisDigitalCulture, Year: "5º Ano", Description: "Acessar as informações na Internet de forma crítica para distinguir os conteúdos confiáveis de não confiáveis."},
	{Code: "EF05CO09", Axis: AxisDigitalCulture, Year: "5º Ano", Description: "Usar informações considerando aplicações e limites dos direitos autorais em diferentes mídias digitais."},
	{Code: "EF05CO10", Axis: AxisDigitalCulture, Year: "5º Ano", Description: "Expressar-se crítica e criativamente na compreensão das mudanças tecnológicas no mundo do trabalho e sobre a evolução da sociedade."},
	{Code: "EF05CO11", Axis: AxisDigitalCulture, Year: "5º Ano", Description: "Identificar a adequação de diferentes tecnologias computacionais na resolução de problemas."},

	// 6º Ano
	{Code: "EF06CO01", Axis: AxisComputationalThinking, Year: "6º Ano", Description: "Classificar informações, agrupando-as em coleções (conjuntos) e associando cada coleção a um ‘tipo de dados’."},
	{Code: "EF06CO02", Axis: AxisComputationalThinking, Year: "6º Ano", Description: "Elaborar algoritmos que envolvam instruções sequenciais, de repetição e de seleção usando uma linguagem de programação."},
	{Code: "EF06CO03", Axis: AxisComputationalThinking, Year: "6º Ano", Description: "Descrever com precisão a solução de um problema, construindo o programa que implementa a solução descrita."},
	{Code: "EF06CO04", Axis: AxisComputationalThinking, Year: "6º Ano", Description: "Construir soluções de problemas usando a técnica de decomposição e automatizar tais soluções usando uma linguagem de programação."},
	{Code: "EF06CO05", Axis: AxisComputationalThinking, Year: "6º Ano", Description: "Identificar os recursos ou insumos necessários (entradas) para a resolução de problemas."},
	{Code: "EF06CO06", Axis: AxisComputationalThinking, Year: "6º Ano", Description: "Comparar diferentes casos particulares (instâncias) de um mesmo problema."},
	{Code: "EF06CO07", Axis: AxisDigitalWorld, Year: "6º Ano", Description: "Entender o processo de transmissão de dados, como a informação é quebrada em pedaços."},
	{Code: "EF06CO08", Axis: AxisDigitalWorld, Year: "6º Ano", Description: "Compreender e utilizar diferentes formas de armazenar, manipular, compactar e recuperar arquivos."},
	{Code: "EF06CO09", Axis: AxisDigitalCulture, Year: "6º Ano", Description: "Apresentar conduta e linguagem apropriadas ao se comunicar em ambiente digital."},
	{Code: "EF06CO10", Axis: AxisDigitalCulture, Year: "6º Ano", Description: "Analisar o consumo de tecnologia na sociedade, compreendendo criticamente o caminho da produção dos recursos."},

	// 7º Ano
	{Code: "EF07CO01", Axis: AxisComputationalThinking, Year: "7º Ano", Description: "Criar soluções de problemas para os quais seja adequado o uso de registros e matrizes unidimensionais."},
	{Code: "EF07CO02", Axis: AxisComputationalThinking, Year: "7º Ano", Description: "Analisar programas para detectar e remover erros."},
	{Code: "EF07CO03", Axis: AxisComputationalThinking, Year: "7º Ano", Description: "Construir soluções computacionais de problemas de diferentes áreas do conhecimento."},
	{Code: "EF07CO04", Axis: AxisComputationalThinking, Year: "7º Ano", Description: "Explorar propriedades básicas de grafos."},
	{Code: "EF07CO05", Axis: AxisComputationalThinking, Year: "7º Ano", Description: "Criar algoritmos fazendo uso da decomposição e do reúso."},
	{Code: "EF07CO06", Axis: AxisDigitalWorld, Year: "7º Ano", Description: "Compreender o papel de protocolos para a transmissão de dados."},
	{Code: "EF07CO07", Axis: AxisDigitalWorld, Year: "7º Ano", Description: "Identificar problemas de segurança cibernética e experimentar formas de proteção."},
	{Code: "EF07CO08", Axis: AxisDigitalCulture, Year: "7º Ano", Description: "Demonstrar empatia sobre opiniões divergentes na web."},
	{Code: "EF07CO09", Axis: AxisDigitalCulture, Year: "7º Ano", Description: "Reconhecer e debater sobre cyberbullying."},
	{Code: "EF07CO10", Axis: AxisDigitalCulture, Year: "7º Ano", Description: "Identificar os impactos ambientais do descarte de peças de computadores."},
	{Code: "EF07CO11", Axis: AxisDigitalCulture, Year: "7º Ano", Description: "Criar, documentar e publicar produtos (vídeos, podcasts, web sites) usando recursos de tecnologia."},

	// 8º Ano
	{Code: "EF08CO01", Axis: AxisComputationalThinking, Year: "8º Ano", Description: "Construir soluções de problemas usando a técnica de recursão."},
	{Code: "EF08CO02", Axis: AxisComputationalThinking, Year: "8º Ano", Description: "Criar soluções de problemas para os quais seja adequado o uso de listas."},
	{Code: "EF08CO03", Axis: AxisComputationalThinking, Year: "8º Ano", Description: "Utilizar algoritmos clássicos de manipulação sobre listas."},
	{Code: "EF08CO04", Axis: AxisComputationalThinking, Year: "8º Ano", Description: "Construir soluções computacionais de problemas de diferentes áreas do conhecimento."},
	{Code: "EF08CO05", Axis: AxisDigitalWorld, Year: "8º Ano", Description: "Compreender os conceitos de paralelismo, concorrência e armazenamento/processamento distribuídos."},
	{Code: "EF08CO06", Axis: AxisDigitalWorld, Year: "8º Ano", Description: "Entender como é a estrutura e funcionamento da internet."},
	{Code: "EF08CO07", Axis: AxisDigitalCulture, Year: "8º Ano", Description: "Compartilhar informações por meio de redes sociais de forma responsável."},
	{Code: "EF08CO08", Axis: AxisDigitalCulture, Year: "8º Ano", Description: "Distinguir os tipos de dados pessoais que são solicitados em espaços digitais."},
	{Code: "EF08CO09", Axis: AxisDigitalCulture, Year: "8º Ano", Description: "Analisar criticamente as políticas de termos de uso das redes sociais."},
	{Code: "EF08CO10", Axis: AxisDigitalCulture, Year: "8º Ano", Description: "Discutir questões sobre segurança e privacidade relacionadas ao uso dos ambientes virtuais."},
	{Code: "EF08CO11", Axis: AxisDigitalCulture, Year: "8º Ano", Description: "Avaliar a precisão, relevância, adequação, abrangência e vieses em fontes de informação eletrônica."},

	// 9º Ano
	{Code: "EF09CO01", Axis: AxisComputationalThinking, Year: "9º Ano", Description: "Criar soluções de problemas para os quais seja adequado o uso de árvores e grafos."},
	{Code: "EF09CO02", Axis: AxisComputationalThinking, Year: "9º Ano", Description: "Construir soluções computacionais de problemas de diferentes áreas do conhecimento."},
	{Code: "EF09CO03", Axis: AxisComputationalThinking, Year: "9º Ano", Description: "Usar autômatos para descrever comportamentos de forma abstrata."},
	{Code: "EF09CO04", Axis: AxisDigitalWorld, Year: "9º Ano", Description: "Compreender o funcionamento de malwares e outros ataques cibernéticos."},
	{Code: "EF09CO05", Axis: AxisDigitalWorld, Year: "9º Ano", Description: "Analisar técnicas de criptografia para armazenamento e transmissão de dados."},
	{Code: "EF09CO06", Axis: AxisDigitalCulture, Year: "9º Ano", Description: "Analisar problemas sociais de sua cidade e estado a partir de ambientes digitais."},
	{Code: "EF09CO07", Axis: AxisDigitalCulture, Year: "9º Ano", Description: "Avaliar aplicações e implicações políticas, socioambientais e culturais das tecnologias digitais."},
	{Code: "EF09CO08", Axis: AxisDigitalCulture, Year: "9º Ano", Description: "Discutir como a distribuição desigual de recursos de computação levanta questões de equidade."},
	{Code: "EF09CO09", Axis: AxisDigitalCulture, Year: "9º Ano", Description: "Criar ou utilizar conteúdo em meio digital, compreendendo questões éticas relacionadas a direitos autorais."},
	{Code: "EF09CO10", Axis: AxisDigitalCulture, Year: "9º Ano", Description: "Avaliar a veracidade, credibilidade e relevância da informação em seus diferentes formatos."},
}
